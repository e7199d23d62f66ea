package codegen

import (
	"context"
	"fmt"
	"runtime"

	"github.com/llir/llvm/ir"
	"golang.org/x/sync/errgroup"

	"github.com/you-not-fish/pragma/internal/syntax"
)

// Unit is an independent compilation unit.
type Unit struct {
	Name    string
	Program *syntax.Program
	Oracle  Oracle
}

// GenerateAll lowers units concurrently, one generator per unit, and
// returns their modules in the order of units. Each unit is lowered to
// completion on one goroutine. The first failure cancels units that have
// not started yet and is returned.
func GenerateAll(ctx context.Context, units []Unit, cfg *Config) ([]*ir.Module, error) {
	mods := make([]*ir.Module, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, u := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := Generate(u.Program, u.Oracle, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", u.Name, err)
			}
			mods[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mods, nil
}
