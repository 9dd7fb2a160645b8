package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"transmuter/internal/analyze"
	"transmuter/internal/common"
	"transmuter/internal/config"
	"transmuter/internal/diagnostic"
	"transmuter/internal/gen"
	"transmuter/internal/mapping"
	"transmuter/internal/match"
	"transmuter/internal/php"
	"transmuter/internal/plan"
	"transmuter/internal/source"
)

// Options configures a Pipeline.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// Now dates outdated entries; time.Now when nil.
	Now func() time.Time
	// DryRun runs every stage but writes nothing.
	DryRun bool
	// CheckOnly stops after conflict detection.
	CheckOnly bool
	// DumpPlan receives a dump of the resolved placements when set.
	DumpPlan io.Writer
}

// Result summarizes a pass.
type Result struct {
	Files  []gen.GeneratedFile
	Digest string
	// Table is the mapping table as persisted at the end of the pass.
	Table       *mapping.Table
	Diagnostics *diagnostic.Diagnostics
	Failed      []*analyze.ParseError

	Sources     int
	Functions   int
	Classes     int
	Synthesized int
	Reinstated  int
	Retired     int
	Written     bool
}

// Pipeline runs transmutation passes with a fixed configuration.
type Pipeline struct {
	opts   Options
	cfg    *config.Config
	log    *slog.Logger
	filter *source.Filter
	pre    *source.Preprocessor
}

// New validates the configuration and builds a Pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, errors.New("pipeline: config is nil")
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	cfg := opts.Config

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	pre, err := source.NewPreprocessor(cfg.Replace)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	return &Pipeline{
		opts:   opts,
		cfg:    cfg,
		log:    opts.Logger,
		filter: source.NewFilter(cfg.Exclude, ignorePatterns(cfg)),
		pre:    pre,
	}, nil
}

// ignorePatterns returns the configured patterns plus the output directory
// when it lies inside the source tree, so generated files are never parsed.
func ignorePatterns(cfg *config.Config) []string {
	patterns := append([]string{}, cfg.Ignore...)

	if rel, ok := insideSource(cfg, cfg.Output); ok {
		patterns = append(patterns, "/"+rel+"/")
	}

	return patterns
}

// insideSource returns path relative to the source directory, slash
// separated, when path lies below it.
func insideSource(cfg *config.Config, path string) (string, bool) {
	src, err := filepath.Abs(cfg.Source)
	if err != nil {
		return "", false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(src, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return filepath.ToSlash(rel), true
}

// Run executes one pass. On a conflict the returned Result carries the
// diagnostics and the error matches plan.ErrMappingConflict.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	cfg := p.cfg

	table, err := mapping.LoadOrEmpty(cfg.Mapping, cfg.RequireMapping, p.log)
	if err != nil {
		return nil, err
	}

	paths, err := source.Discover(ctx, cfg.Source, p.filter)
	if err != nil {
		return nil, err
	}

	p.log.Debug("discovered sources", slog.Int("count", len(paths)), slog.String("root", cfg.Source))

	units, err := p.parse(ctx, paths)
	if err != nil {
		return nil, err
	}

	syms := analyze.Collect(units, analyze.Options{
		Exclude:   p.filter.Excluded,
		Polyfills: common.NewSet(table.Polyfills()...),
	})
	for _, f := range syms.Failed {
		p.log.Warn("skipping unparsable source", slog.String("path", f.Path), slog.Any("error", f.Err))
	}

	resolver := plan.NewResolver[*php.Decl](plan.ResolutionConfig{
		Placement:          cfg.Placement(),
		GlobalAccessors:    cfg.Accessors(),
		MinSuggestionScore: match.DefaultMinScore,
		MaxSuggestions:     match.DefaultMaxSuggestions,
	}, p.log)

	pl, err := resolver.Resolve(syms, table)
	if err != nil {
		return nil, fmt.Errorf("resolving targets: %w", err)
	}

	res := &Result{
		Diagnostics: &diagnostic.Diagnostics{},
		Failed:      syms.Failed,
		Sources:     len(paths),
		Functions:   len(syms.Functions),
		Classes:     len(syms.Classes),
		Synthesized: pl.Synthesized,
		Reinstated:  pl.Reinstated,
	}

	// Only entries that survive the pass are validated.
	final := mapping.Retire(pl.Table, syms.Discovered(), p.opts.Now())

	res.Diagnostics.Merge(*mapping.Validate(final))
	res.Diagnostics.Merge(*plan.DetectConflicts(pl, syms.Members))
	res.Diagnostics.Merge(*pl.Diagnostics)

	if p.opts.DumpPlan != nil {
		dumpPlan(p.opts.DumpPlan, pl)
	}

	err = plan.Check(res.Diagnostics)
	if err != nil {
		return res, err
	}

	if p.opts.CheckOnly {
		res.Table = pl.Table
		return res, nil
	}

	res.Table = final
	res.Retired = retired(pl.Table, final)

	gcfg := gen.DefaultGeneratorConfig()
	gcfg.Reserved = cfg.ReservedSet()

	files, err := gen.NewGenerator[*php.Decl](gcfg, php.NewPrinter(), p.log).Generate(pl, final, syms.Polyfills)
	if err != nil {
		return res, err
	}

	res.Files = files
	res.Digest = gen.Digest(files)

	// Nothing is written by an interrupted pass.
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if !p.opts.DryRun {
		err = gen.WriteFiles(files, cfg.Output)
		if err != nil {
			return res, err
		}

		kept, err := persistMapping(final, cfg.Mapping)
		if err != nil {
			return res, err
		}

		if kept {
			p.log.Warn("mapping file is not valid YAML, leaving it unchanged", slog.String("path", cfg.Mapping))
			res.Diagnostics.AddWarning("mapping_kept",
				"mapping file could not be parsed; it was left unchanged and the run used default placements",
				cfg.Mapping)
		}

		res.Written = true
	}

	p.log.Info("transmutation complete",
		slog.Int("sources", res.Sources),
		slog.Int("functions", res.Functions),
		slog.Int("classes", res.Classes),
		slog.Int("files", len(files)),
		slog.Int("synthesized", res.Synthesized),
		slog.Int("reinstated", res.Reinstated),
		slog.Int("retired", res.Retired),
		slog.Int("unparsable", len(res.Failed)),
		slog.String("digest", res.Digest),
		slog.Bool("dry_run", p.opts.DryRun),
		slog.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

// retired counts the active entries of before that final no longer has.
func retired(before, final *mapping.Table) int {
	n := 0

	for name := range before.Functions {
		if _, ok := final.Functions[name]; !ok {
			n++
		}
	}

	for name := range before.Classes {
		if _, ok := final.Classes[name]; !ok {
			n++
		}
	}

	return n
}

// persistMapping writes t to path unless the file already holds the same
// bytes, so a watcher on the mapping file is not woken by a no-op pass.
// An existing file that does not parse is never overwritten; kept reports
// that case.
func persistMapping(t *mapping.Table, path string) (kept bool, err error) {
	data, err := mapping.Marshal(t)
	if err != nil {
		return false, fmt.Errorf("failed to marshal mapping: %w", err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return false, fmt.Errorf("reading mapping file %s: %w", path, err)
	case bytes.Equal(existing, data):
		return false, nil
	default:
		if _, perr := mapping.Parse(existing); perr != nil {
			return true, nil
		}
	}

	return false, mapping.WriteFile(t, path)
}

// dumpPlan writes the placements and resulting table. Declarations are
// left out; they hold whole source files.
func dumpPlan(w io.Writer, pl *plan.Plan[*php.Decl]) {
	cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cs.Fdump(w, struct {
		Functions []plan.Placement
		Classes   []plan.Placement
		Table     *mapping.Table
	}{pl.Functions, pl.Classes, pl.Table})
}
