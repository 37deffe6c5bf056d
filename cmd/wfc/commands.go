package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/wfc/grid"
	"github.com/katalvlaran/wfc/ruleset"
	"github.com/katalvlaran/wfc/state"
)

// app carries what every subcommand shares.
type app struct {
	log      *logrus.Logger
	logLevel string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{log: logrus.New()}
	a.log.SetOutput(errOut)
	a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	root := &cobra.Command{
		Use:           "wfc",
		Short:         "Fill grids with Wave Function Collapse",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.log.SetLevel(lvl)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info",
		"Log level (trace, debug, info, warn, error)")

	root.AddCommand(a.newRunCmd(), a.newBatchCmd(), a.newPresetsCmd())
	return root
}

// source selects where the rules come from.
type source struct {
	preset string
	rules  string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.preset, "preset", "texture", "Embedded rule set (see 'wfc presets')")
	cmd.Flags().StringVar(&s.rules, "rules", "", "Path to a YAML rule set")
	cmd.MarkFlagsMutuallyExclusive("preset", "rules")
}

func (s *source) load() (*ruleset.Ruleset, error) {
	if s.rules == "" {
		return ruleset.Preset(s.preset)
	}
	f, err := os.Open(s.rules)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rs, err := ruleset.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.rules, err)
	}
	return rs, nil
}

func (a *app) newRunCmd() *cobra.Command {
	var (
		src source
		cfg runConfig
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collapse one grid and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := src.load()
			if err != nil {
				return err
			}
			res, err := solve(cmd.Context(), a.log, rs, cfg)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"ruleset":      rs.Title(),
				"seed":         res.seed,
				"attempts":     res.attempts,
				"observations": res.stats.Observations,
				"narrowings":   res.stats.Narrowings,
				"regions":      len(grid.Regions(res.grid, grid.Conn4Offsets(), state.Bitset.Equal)),
			}).Info("grid solved")
			_, err = io.WriteString(cmd.OutOrStdout(), rs.Render(res.grid))
			return err
		},
	}
	src.register(cmd)
	cfg.register(cmd)
	cmd.Flags().IntVar(&cfg.retries, "retries", 5, "Extra attempts with derived seeds after a contradiction")
	return cmd
}

func (a *app) newBatchCmd() *cobra.Command {
	var (
		src source
		cfg batchConfig
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Collapse many grids concurrently and report how many succeed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := src.load()
			if err != nil {
				return err
			}
			res, err := runBatch(cmd.Context(), a.log, rs, cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ruleset: %s\ntrials: %d\nsolved: %d\ncontradicted: %d\nmean observations: %.1f\n",
				rs.Title(), res.trials, res.solved, res.contradicted, res.meanObservations())
			return err
		},
	}
	src.register(cmd)
	cfg.register(cmd)
	cmd.Flags().IntVar(&cfg.trials, "trials", 100, "Number of grids to collapse")
	cmd.Flags().IntVar(&cfg.workers, "workers", 4, "Maximum concurrent collapses")
	return cmd
}

func (a *app) newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the embedded rule sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ruleset.Presets() {
				rs, err := ruleset.Preset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %2d values  %s\n", name, len(rs.Values()), rs.Description())
			}
			return nil
		},
	}
}
