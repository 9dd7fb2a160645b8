package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"transmuter/internal/analyze"
	"transmuter/internal/php"
)

// parse reads, preprocesses and parses paths on at most Jobs goroutines.
// Units come back in the order of paths regardless of completion order.
// Unreadable or unparsable units carry their error; only cancellation
// fails the call.
func (p *Pipeline) parse(ctx context.Context, paths []string) ([]php.Unit, error) {
	units := make([]php.Unit, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Jobs)

	for i, rel := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := os.ReadFile(filepath.Join(p.cfg.Source, filepath.FromSlash(rel)))
			if err != nil {
				p.log.Debug("read failed", slog.String("path", rel), slog.Any("error", err))
				units[i] = php.Unit{Path: rel, Err: &analyze.ParseError{Path: rel, Err: err}}

				return nil
			}

			parser := php.NewParser()
			defer parser.Close()

			units[i] = parser.Parse(ctx, rel, p.pre.Apply(rel, src))

			// A cancelled parse is not a broken unit.
			if err := ctx.Err(); err != nil {
				return err
			}

			if units[i].Err != nil {
				p.log.Debug("parse failed", slog.String("path", rel), slog.Any("error", units[i].Err))
			}

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return units, nil
}
