package rxvm

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MatchLines evaluates the compiled program against every line
// concurrently and returns the verdicts in input order. At most GOMAXPROCS
// lines are evaluated at once.
//
// The first evaluation error cancels the remaining work and is returned. A
// cancelled ctx stops work that has not started and returns ctx.Err().
func (r *Regex) MatchLines(ctx context.Context, lines []string) ([]bool, error) {
	results := make([]bool, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := r.Match(line)
			if err != nil {
				return err
			}
			results[i] = ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The group context is always done after Wait; only the caller's
	// cancellation matters here.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
