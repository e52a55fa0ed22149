// Command hyperspike is the host process: it loads a configuration and
// topology, builds an engine, runs it, and logs structured per-tick
// progress. It handles process launch, argument/env parsing, and
// logging, and never reaches into engine internals beyond the engine's
// own exported operations.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/meronrudy/hyperspike/config"
)

func main() {
	var overrides cliOverrides

	rootCmd := &cobra.Command{
		Use:   "hyperspike",
		Short: "Deterministic hypergraph spiking-network simulator",
		Long:  "hyperspike builds a spiking neural network from a topology file and steps it forward one tick at a time, logging fired spikes and diagnostics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags(), &overrides)
		},
		SilenceUsage: true,
	}

	f := rootCmd.Flags()
	overrides.configPath = f.String("config", "", "path to a YAML config file (overrides HYPERSPIKE_CONFIG env)")
	overrides.wheelSize = f.Uint64("wheel-size", 0, "override wheelSize")
	overrides.budgetEdges = f.Int("budget-edges", 0, "override budgetEdgesPerTick")
	overrides.budgetSpikes = f.Int("budget-spikes", 0, "override budgetSpikesPerTick")
	overrides.plasticity = f.Bool("plasticity", false, "override plasticityEnabled")
	overrides.ticks = f.Uint64("ticks", 0, "run exactly N ticks (takes precedence over --until)")
	overrides.until = f.Uint64("until", 0, "run until current_time reaches this tick")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type cliOverrides struct {
	configPath   *string
	wheelSize    *uint64
	budgetEdges  *int
	budgetSpikes *int
	plasticity   *bool
	ticks        *uint64
	until        *uint64
}

func run(flags *pflag.FlagSet, o *cliOverrides) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	configPath := *o.configPath
	if configPath == "" {
		configPath = os.Getenv("HYPERSPIKE_CONFIG")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Error("failed to load config")
		return fmt.Errorf("loading config: %w", err)
	}

	applyExplicitFlags(flags, cfg, o)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Error("invalid config")
		return fmt.Errorf("invalid config: %w", err)
	}

	eng, err := config.BuildEngine(cfg)
	if err != nil {
		log.WithError(err).Error("failed to build engine")
		return fmt.Errorf("building engine: %w", err)
	}

	log.WithFields(logrus.Fields{
		"wheel_size": cfg.WheelSize,
		"neurons":    eng.NeuronCount(),
		"edges":      eng.EdgeCount(),
	}).Info("engine ready")

	runTick := func() {
		fired := eng.Step()
		diag := eng.Diagnostics()
		log.WithFields(logrus.Fields{
			"tick":             eng.CurrentTime() - 1,
			"fired":            len(fired),
			"edges_visited":    diag.EdgesVisited,
			"edges_dropped":    diag.EdgesDropped,
			"spikes_scheduled": diag.SpikesScheduled,
			"spikes_dropped":   diag.SpikesDropped,
		}).Info("tick complete")
	}

	switch {
	case *o.ticks > 0:
		for i := uint64(0); i < *o.ticks; i++ {
			runTick()
		}
	case *o.until > 0:
		for eng.CurrentTime() < *o.until {
			runTick()
		}
	default:
		log.Warn("neither --ticks nor --until given; nothing to run")
	}

	log.Info("run complete")
	return nil
}

// applyExplicitFlags applies only the CLI flags the user actually set,
// so unset flags never clobber values resolved from the YAML file or
// environment variables.
func applyExplicitFlags(flags *pflag.FlagSet, cfg *config.Config, o *cliOverrides) {
	if flags.Changed("wheel-size") {
		cfg.WheelSize = *o.wheelSize
	}
	if flags.Changed("budget-edges") {
		cfg.BudgetEdgesPerTick = *o.budgetEdges
	}
	if flags.Changed("budget-spikes") {
		cfg.BudgetSpikesPerTick = *o.budgetSpikes
	}
	if flags.Changed("plasticity") {
		cfg.PlasticityEnabled = *o.plasticity
	}
}
