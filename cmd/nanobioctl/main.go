// nanobioctl runs nanoparticle design optimizations from the command line
// using the built-in placeholder simulator.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghasn43/naobio-pro/internal/audit"
	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/internal/engine"
	"github.com/ghasn43/naobio-pro/internal/optimize"
	"github.com/ghasn43/naobio-pro/internal/scenario"
	"github.com/ghasn43/naobio-pro/pkg/config"
	"github.com/ghasn43/naobio-pro/pkg/logger"
)

var (
	configPath  string
	scenarioKey string
	trials      int
	seed        int64
	logLevel    string
	jsonOut     string
	explainBest bool
)

var rootCmd = &cobra.Command{
	Use:   "nanobioctl",
	Short: "Multi-objective nanoparticle design optimization engine",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an optimization and print the audit report",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetDefault(logger.NewText(logLevel, os.Stderr))

		space := design.DefaultSpace()
		key := scenarioKey
		runTrials := trials
		runSeed := seed

		var weights *design.Weights
		var cons design.Constraints
		if configPath != "" {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			space = cfg.Space
			if cfg.Scenario != "" && key == "" {
				key = cfg.Scenario
			}
			weights = cfg.Weights
			cons = cfg.ResolvedConstraints()
			if runTrials == 0 {
				runTrials = cfg.Run.Trials
			}
			if runSeed == 0 {
				runSeed = cfg.Run.Seed
			}
			if cfg.LogLevel != "" {
				logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stderr))
			}
		}

		engCfg := engine.DefaultConfig()
		if runSeed != 0 {
			engCfg.Seed = runSeed
		}
		eng, err := engine.New(design.PlaceholderSimulator{}, engCfg)
		if err != nil {
			return err
		}

		var res *optimize.Result
		var record *audit.Record
		switch {
		case key != "":
			res, record, err = eng.RunScenario(key, space, runTrials)
		case weights != nil:
			res, record, err = eng.RunCustom(space, *weights, cons, runTrials)
		default:
			res, record, err = eng.RunScenario("balanced", space, runTrials)
		}
		if err != nil {
			return err
		}

		if jsonOut != "" {
			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding audit record: %w", err)
			}
			if err := os.WriteFile(jsonOut, data, 0o644); err != nil {
				return fmt.Errorf("writing audit record: %w", err)
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), record.Report())

		if explainBest && res.Feasible() {
			report, err := eng.ExplainBest(res)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nSensitivity (score delta vs. best, largest impact first)\n")
			for _, entry := range report.Entries {
				if entry.Skipped {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %-8s skipped\n", entry.Parameter, entry.Variant)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %-8s %+.3f\n", entry.Parameter, entry.Variant, entry.ScoreDelta)
			}
		}
		return nil
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the available scenario presets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range scenario.All() {
			tox, cost := "-", "-"
			if p.Constraints.ToxicityMax != nil {
				tox = fmt.Sprintf("%g", *p.Constraints.ToxicityMax)
			}
			if p.Constraints.CostMax != nil {
				cost = fmt.Sprintf("%g", *p.Constraints.CostMax)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", p.Key, p.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "  weights eff=%.2f safety=%.2f cost=%.2f  tox_max=%s cost_max=%s trials=%d\n",
				p.Weights.Efficacy, p.Weights.Safety, p.Weights.Cost, tox, cost, p.RecommendedTrials)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "run configuration YAML file")
	runCmd.Flags().StringVarP(&scenarioKey, "scenario", "s", "", "scenario preset key (see 'scenarios')")
	runCmd.Flags().IntVarP(&trials, "trials", "n", 0, "trial budget (0 = scenario recommendation)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "sampler seed (0 = engine default)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "write the audit record JSON to this path")
	runCmd.Flags().BoolVar(&explainBest, "explain", false, "include sensitivity analysis of the best design")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
