package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newValidateCmd checks that the resolved configuration produces a valid
// model.ModelData without running the (potentially long) synthesis
// pipeline — the cheap-preflight counterpart to synthesize, grounded on
// the teacher's own health/doctor subcommand pattern.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the resolved configuration without synthesizing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			modelData, err := cfg.ToModelData()
			if err != nil {
				return err
			}
			buildCfg := cfg.ToBuildConfig(modelData)
			if err := buildCfg.Validate(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, "ok")
			return err
		},
	}
	return cmd
}
