// Package config loads cmd/raybnntopo's runtime configuration from
// flags, environment variables, and an optional config file, following
// the teacher-adjacent CWBudde-go-pocket-tts internal/config layering
// (spf13/viper defaults + pflag binding + env override).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/raybnn/topology/build"
	"github.com/raybnn/topology/model"
)

// Config is the fully-resolved CLI configuration: the geometric/topology
// model parameters, the build-pipeline-only knobs, the RNG seed, and the
// log level.
type Config struct {
	Topology TopologyConfig `mapstructure:"topology"`
	Build    BuildConfig    `mapstructure:"build"`
	Seed     int64          `mapstructure:"seed"`
	LogLevel string         `mapstructure:"log_level"`
}

// TopologyConfig mirrors spec.md's model-parameter table (model.ModelData
// before validation/defaulting).
type TopologyConfig struct {
	NeuronSize           int64   `mapstructure:"neuron_size"`
	InputSize            int64   `mapstructure:"input_size"`
	OutputSize           int64   `mapstructure:"output_size"`
	SphereRad            float64 `mapstructure:"sphere_rad"`
	NeuronRad            float64 `mapstructure:"neuron_rad"`
	ConRad               float64 `mapstructure:"con_rad"`
	RayMaxRounds         int64   `mapstructure:"ray_max_rounds"`
	RayNeuronIntersect   bool    `mapstructure:"ray_neuron_intersect"`
	MaxAllowedHitsNeuron int64   `mapstructure:"max_allowed_hits_neuron"`
	MaxAllowedHitsGlia   int64   `mapstructure:"max_allowed_hits_glia"`
	MaxSameCounter       int64   `mapstructure:"max_same_counter"`
}

// BuildConfig mirrors build.Config's pipeline-only knobs.
type BuildConfig struct {
	BodyCandidates  int64   `mapstructure:"body_candidates"`
	NeuronFraction  float64 `mapstructure:"neuron_fraction"`
	LoopDeleteDepth int64   `mapstructure:"loop_delete_depth"`
}

// LoadOptions binds the flags of a cobra command alongside an optional
// config file path.
type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// DefaultConfig returns a small, fast-to-synthesize network suitable for
// a local smoke test: it is deliberately modest, not a recommended
// production topology size.
func DefaultConfig() Config {
	return Config{
		Topology: TopologyConfig{
			NeuronSize:           200,
			InputSize:            10,
			OutputSize:           10,
			SphereRad:            10.0,
			NeuronRad:            0.05,
			ConRad:               3.0,
			RayMaxRounds:         2000,
			RayNeuronIntersect:   true,
			MaxAllowedHitsNeuron: model.DefaultMaxAllowedHitsNeuron,
			MaxAllowedHitsGlia:   model.DefaultMaxAllowedHitsGlia,
			MaxSameCounter:       model.DefaultMaxSameCounter,
		},
		Build: BuildConfig{
			BodyCandidates:  400,
			NeuronFraction:  0.7,
			LoopDeleteDepth: 6,
		},
		Seed:     42,
		LogLevel: "info",
	}
}

// RegisterFlags registers every tunable as a persistent flag, defaulted
// from defaults.
func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Int64("neuron-size", defaults.Topology.NeuronSize, "Total neuron count (input+hidden+output)")
	fs.Int64("input-size", defaults.Topology.InputSize, "Input cohort size")
	fs.Int64("output-size", defaults.Topology.OutputSize, "Output cohort size")
	fs.Float64("sphere-rad", defaults.Topology.SphereRad, "Containing-ball radius")
	fs.Float64("neuron-rad", defaults.Topology.NeuronRad, "Uniform blocking radius of any cell")
	fs.Float64("con-rad", defaults.Topology.ConRad, "Maximum Euclidean connection distance")
	fs.Int64("ray-max-rounds", defaults.Topology.RayMaxRounds, "Hard cap on ray-trace locality iterations")
	fs.Bool("ray-neuron-intersect", defaults.Topology.RayNeuronIntersect, "Occlude candidate rays against hidden neurons, not just glia")
	fs.Int64("max-allowed-hits-neuron", defaults.Topology.MaxAllowedHitsNeuron, "Neuron occlusion tolerance")
	fs.Int64("max-allowed-hits-glia", defaults.Topology.MaxAllowedHitsGlia, "Glia occlusion tolerance")
	fs.Int64("max-same-counter", defaults.Topology.MaxSameCounter, "Stagnation window before giving up extending the topology")

	fs.Int64("body-candidates", defaults.Build.BodyCandidates, "Candidate cell count placed in the ball before collision resolution")
	fs.Float64("neuron-fraction", defaults.Build.NeuronFraction, "Fraction of surviving body cells kept as hidden neurons (remainder is glia)")
	fs.Int64("loop-delete-depth", defaults.Build.LoopDeleteDepth, "Backward-walk depth for connectivity check and loop deletion")

	fs.Int64("seed", defaults.Seed, "RNG seed for placement and ray-trace synthesis")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

// Load resolves a Config from defaults, an optional config file,
// environment variables (prefix RAYBNNTOPO_), and explicitly set bound
// flags, in ascending priority.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v, opts.Defaults)

	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("RAYBNNTOPO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("raybnntopo")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("topology.neuron_size", c.Topology.NeuronSize)
	v.SetDefault("topology.input_size", c.Topology.InputSize)
	v.SetDefault("topology.output_size", c.Topology.OutputSize)
	v.SetDefault("topology.sphere_rad", c.Topology.SphereRad)
	v.SetDefault("topology.neuron_rad", c.Topology.NeuronRad)
	v.SetDefault("topology.con_rad", c.Topology.ConRad)
	v.SetDefault("topology.ray_max_rounds", c.Topology.RayMaxRounds)
	v.SetDefault("topology.ray_neuron_intersect", c.Topology.RayNeuronIntersect)
	v.SetDefault("topology.max_allowed_hits_neuron", c.Topology.MaxAllowedHitsNeuron)
	v.SetDefault("topology.max_allowed_hits_glia", c.Topology.MaxAllowedHitsGlia)
	v.SetDefault("topology.max_same_counter", c.Topology.MaxSameCounter)

	v.SetDefault("build.body_candidates", c.Build.BodyCandidates)
	v.SetDefault("build.neuron_fraction", c.Build.NeuronFraction)
	v.SetDefault("build.loop_delete_depth", c.Build.LoopDeleteDepth)

	v.SetDefault("seed", c.Seed)
	v.SetDefault("log_level", c.LogLevel)

	v.RegisterAlias("topology.neuron_size", "neuron-size")
	v.RegisterAlias("topology.input_size", "input-size")
	v.RegisterAlias("topology.output_size", "output-size")
	v.RegisterAlias("topology.sphere_rad", "sphere-rad")
	v.RegisterAlias("topology.neuron_rad", "neuron-rad")
	v.RegisterAlias("topology.con_rad", "con-rad")
	v.RegisterAlias("topology.ray_max_rounds", "ray-max-rounds")
	v.RegisterAlias("topology.ray_neuron_intersect", "ray-neuron-intersect")
	v.RegisterAlias("topology.max_allowed_hits_neuron", "max-allowed-hits-neuron")
	v.RegisterAlias("topology.max_allowed_hits_glia", "max-allowed-hits-glia")
	v.RegisterAlias("topology.max_same_counter", "max-same-counter")
	v.RegisterAlias("build.body_candidates", "body-candidates")
	v.RegisterAlias("build.neuron_fraction", "neuron-fraction")
	v.RegisterAlias("build.loop_delete_depth", "loop-delete-depth")
	v.RegisterAlias("log_level", "log-level")
}

// ToModelData converts the resolved TopologyConfig into a validated
// model.ModelData.
func (c Config) ToModelData() (model.ModelData, error) {
	return model.New(
		c.Topology.NeuronSize,
		c.Topology.InputSize,
		c.Topology.OutputSize,
		float32(c.Topology.SphereRad),
		float32(c.Topology.NeuronRad),
		float32(c.Topology.ConRad),
		c.Topology.RayMaxRounds,
		model.WithRayNeuronIntersect(c.Topology.RayNeuronIntersect),
		model.WithMaxAllowedHitsNeuron(c.Topology.MaxAllowedHitsNeuron),
		model.WithMaxAllowedHitsGlia(c.Topology.MaxAllowedHitsGlia),
		model.WithMaxSameCounter(c.Topology.MaxSameCounter),
	)
}

// ToBuildConfig pairs m with this Config's pipeline-only knobs.
func (c Config) ToBuildConfig(m model.ModelData) build.Config {
	return build.Config{
		Model:           m,
		BodyCandidates:  c.Build.BodyCandidates,
		NeuronFraction:  float32(c.Build.NeuronFraction),
		LoopDeleteDepth: c.Build.LoopDeleteDepth,
	}
}
