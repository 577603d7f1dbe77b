// Package gondoc resolves //documented: directives in Go packages and
// generates accessors exposing their doc comments.
package gondoc

import (
	"context"
	"fmt"
	"go/token"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/pablor21/gondoc/config"
	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/generator"
	"github.com/pablor21/gondoc/logger"
	"github.com/pablor21/gondoc/parser"
	"github.com/pablor21/gondoc/types"
	"github.com/pablor21/gondoc/utils"
)

// Result holds the resolved packages of one run, in load order.
type Result struct {
	Packages []*types.PackageResult
	Fset     *token.FileSet
}

// HasErrors reports whether any package collected an error diagnostic.
func (r *Result) HasErrors() bool {
	for _, p := range r.Packages {
		if p.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics merges the diagnostics of every package into one bag.
func (r *Result) Diagnostics(max int) *diag.Bag {
	bag := diag.NewBag(max)
	for _, p := range r.Packages {
		bag.Merge(p.Bag)
	}
	return bag
}

// Process resolves the packages of the default configuration.
func Process() (*Result, error) {
	return ProcessWithConfig(config.NewDefaultConfig())
}

// ProcessWithConfig resolves the packages named by cfg, logging to stderr.
func ProcessWithConfig(cfg *config.Config) (*Result, error) {
	level := utils.DerefPtr(cfg.LogLevel, logger.LogLevelInfo)
	ctx := types.NewProcessContext(cfg, logger.NewLogger(level, os.Stderr), nil)
	return ProcessWithContext(context.Background(), ctx)
}

// ProcessWithContext loads the configured packages and resolves them
// concurrently. Each package gets its own orchestrator, so diagnostics never
// cross package boundaries.
func ProcessWithContext(c context.Context, ctx *types.ProcessContext) (*Result, error) {
	pkgs, err := loadPackages(ctx)
	if err != nil {
		return nil, err
	}
	if len(pkgs) > 0 && pkgs[0].Fset != nil {
		ctx = types.NewProcessContext(ctx.Config, ctx.Logger, pkgs[0].Fset)
	}

	results := make([]*types.PackageResult, len(pkgs))
	g, gctx := errgroup.WithContext(c)
	g.SetLimit(jobs(ctx.Config))
	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for _, e := range pkg.Errors {
				ctx.Logger.Warn("package has errors", "package", pkg.PkgPath, "error", e.Error())
			}
			p := parser.NewParserFromPackage(ctx, pkg)
			results[i] = parser.NewOrchestrator(ctx).ProcessPackage(p)
			ctx.Logger.Debug("package resolved", "package", pkg.PkgPath, "tables", len(results[i].Tables))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Packages: results, Fset: ctx.Fset}, nil
}

func loadPackages(ctx *types.ProcessContext) ([]*packages.Package, error) {
	pkgs, err := utils.LoadPackages(ctx.Config.PackagePatterns()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	return pkgs, nil
}

func jobs(cfg *config.Config) int {
	if n := utils.DerefPtr(cfg.Jobs, 0); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// Generate writes the output file of every package that resolved without
// errors. Failures are added to the package's diagnostics. It returns the
// paths written or removed.
func Generate(res *Result, cfg *config.Config) []string {
	g := generator.New(utils.DerefPtr(cfg.Output, generator.DefaultOutput))
	var touched []string
	for _, p := range res.Packages {
		if p.Bag.HasErrors() {
			continue
		}
		path, err := g.Write(p)
		if err != nil {
			p.Bag.AddError(err)
			continue
		}
		if path != "" {
			touched = append(touched, path)
		}
	}
	return touched
}

// Stale returns the directories of packages whose output file is missing or
// out of date.
func Stale(res *Result, cfg *config.Config) []string {
	g := generator.New(utils.DerefPtr(cfg.Output, generator.DefaultOutput))
	var stale []string
	for _, p := range res.Packages {
		if p.Bag.HasErrors() {
			continue
		}
		ok, err := g.Stale(p)
		if err != nil {
			p.Bag.AddError(err)
			continue
		}
		if ok {
			stale = append(stale, p.Dir)
		}
	}
	return stale
}
