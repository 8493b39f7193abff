package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/raybnn/topology/build"
	"github.com/raybnn/topology/internal/rng"
)

func newSynthesizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Run the full placement/ray-trace/de-cycle pipeline and report the result",
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

			stream := rng.New(cfg.Seed)
			state, err := build.Model(buildCfg, stream, nil)
			if err != nil {
				return err
			}

			slog.Info("topology synthesized",
				"seed", cfg.Seed,
				"input_cohort", len(state.InputPos),
				"output_cohort", len(state.OutputPos),
				"hidden_cohort", len(state.HiddenPos),
				"glia_cohort", len(state.GliaPos),
				"edges", len(state.COO.Rows),
				"effective_neuron_size", state.NeuronSize(),
				"connected", state.Connected,
				"stagnated", state.Stagnated,
			)
			return nil
		},
	}
	return cmd
}
