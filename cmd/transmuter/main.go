// Package main provides the CLI entrypoint for transmuter.
//
// transmuter relocates the global functions and classes of a PHP code base
// into namespaced classes:
//   - Discovers and parses PHP sources
//   - Places every symbol according to a YAML mapping, extending the
//     mapping with defaults for new symbols
//   - Refuses to write anything while two symbols share a target
//   - Generates class files, forwarding shims and extracted polyfills
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"transmuter/internal/config"
	"transmuter/internal/pipeline"
	"transmuter/internal/plan"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// flags holds the values of the persistent flags.
type flags struct {
	config         string
	source         string
	output         string
	mapping        string
	requireMapping bool
	jobs           int
	logLevel       string

	dryRun   bool
	dumpPlan bool
	debounce time.Duration
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "transmuter",
		Short:         "Relocate global PHP functions and classes into namespaced classes",
		Long:          "transmuter parses a PHP code base, places every global function and class according to a YAML mapping, and generates namespaced classes plus forwarding shims that keep the old names working.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "configuration file (default: "+config.DefaultFile+" if present)")
	pf.StringVar(&f.source, "source", "", "source directory")
	pf.StringVar(&f.output, "output", "", "output directory, purged on every run")
	pf.StringVar(&f.mapping, "mapping", "", "mapping file")
	pf.BoolVar(&f.requireMapping, "require-mapping", false, "fail when the mapping file is missing or unreadable")
	pf.IntVar(&f.jobs, "jobs", 0, "files parsed concurrently")
	pf.StringVar(&f.logLevel, "log-level", "info", "log level: debug|info|warn|error")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the namespaced tree and rewrite the mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, f, false)
		},
	}
	runCmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "run every stage but write nothing")
	runCmd.Flags().BoolVar(&f.dumpPlan, "dump-plan", false, "dump the resolved placements to stdout")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the mapping against the sources without writing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, f, true)
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Run, then run again whenever sources or the mapping change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, f)
		},
	}
	watchCmd.Flags().DurationVar(&f.debounce, "debounce", pipeline.DefaultDebounce, "quiet period before a run")

	root.AddCommand(runCmd, checkCmd, watchCmd)

	return root
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	path := f.config
	if path == "" {
		path = config.DefaultFile
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed

	if changed("source") {
		cfg.Source = f.source
	}

	if changed("output") {
		cfg.Output = f.output
	}

	if changed("mapping") {
		cfg.Mapping = f.mapping
	}

	if changed("require-mapping") {
		cfg.RequireMapping = f.requireMapping
	}

	if changed("jobs") {
		cfg.Jobs = f.jobs
	}

	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level

	err := lvl.UnmarshalText([]byte(level))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func newPipeline(cmd *cobra.Command, f *flags, checkOnly bool) (*pipeline.Pipeline, error) {
	log, err := newLogger(cmd.ErrOrStderr(), f.logLevel)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Config:    cfg,
		Logger:    log,
		DryRun:    f.dryRun,
		CheckOnly: checkOnly,
	}

	if f.dumpPlan {
		opts.DumpPlan = cmd.OutOrStdout()
	}

	return pipeline.New(opts)
}

func runPipeline(cmd *cobra.Command, f *flags, checkOnly bool) error {
	p, err := newPipeline(cmd, f, checkOnly)
	if err != nil {
		return err
	}

	res, err := p.Run(cmd.Context())
	report(cmd.ErrOrStderr(), res, err)

	if err != nil {
		return err
	}

	if checkOnly {
		fmt.Fprintf(cmd.OutOrStdout(), "mapping OK: %d functions, %d classes\n", res.Functions, res.Classes)
	}

	return nil
}

func runWatch(cmd *cobra.Command, f *flags) error {
	p, err := newPipeline(cmd, f, false)
	if err != nil {
		return err
	}

	return p.Watch(cmd.Context(), f.debounce, func(res *pipeline.Result, err error) {
		// A pass cut short by shutdown has nothing to report.
		if cmd.Context().Err() != nil {
			return
		}

		report(cmd.ErrOrStderr(), res, err)

		if err != nil && !errors.Is(err, plan.ErrMappingConflict) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
		}
	})
}

// report prints the diagnostics of a pass. Conflicts are listed in full
// rather than through the joined error message.
func report(w io.Writer, res *pipeline.Result, err error) {
	if res == nil || res.Diagnostics == nil {
		return
	}

	if errors.Is(err, plan.ErrMappingConflict) || len(res.Diagnostics.Warnings) > 0 {
		res.Diagnostics.Report(w)
	}
}
