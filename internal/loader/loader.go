// Package loader reads annotated declarations from Go packages.
//
// Packages are loaded with golang.org/x/tools/go/packages so that every
// declaration can be checked for unresolved types. A declaration whose types
// do not resolve is kept but marked unresolvable; the scanner defers the round
// instead of failing.
package loader

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Logger receives loader diagnostics
type Logger interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

// Config describes what to load
type Config struct {
	Dir              string   // working directory for pattern resolution
	Patterns         []string // package patterns such as ./...
	GeneratedPackage string   // import path of the generated package, loaded alongside Patterns
	BuildFlags       []string // extra flags for the build system
}

// Result holds the declarations of one load. It implements decl.Provider.
type Result struct {
	*decl.MemoryProvider
	Packages []string // import paths of the loaded packages, sorted
}

// PackageLoader loads declarations from Go packages
type PackageLoader struct {
	parser *annotations.Parser
	logger Logger
}

// New creates a loader that validates annotations against registry
func New(registry annotations.Registry, logger Logger) *PackageLoader {
	if registry == nil {
		registry = annotations.DefaultRegistry()
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &PackageLoader{
		parser: annotations.NewParser(registry),
		logger: logger,
	}
}

// Load loads the configured packages and extracts their annotated declarations.
// Malformed annotations are collected and returned together as a MultipleErrors;
// the build system failing outright yields a declaration error.
func (l *PackageLoader) Load(ctx context.Context, cfg Config) (*Result, error) {
	patterns := append([]string(nil), cfg.Patterns...)
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	if cfg.GeneratedPackage != "" {
		patterns = append(patterns, cfg.GeneratedPackage)
	}

	pkgCfg := &packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		Dir:        cfg.Dir,
		BuildFlags: cfg.BuildFlags,
	}

	pkgs, err := packages.Load(pkgCfg, patterns...)
	if err != nil {
		return nil, axonerrors.WrapDeclarationError(strings.Join(patterns, " "), err)
	}

	result := &Result{MemoryProvider: decl.NewMemoryProvider()}
	problems := axonerrors.NewMultipleErrors()
	seen := make(map[string]bool)

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].ID < pkgs[j].ID })
	for _, pkg := range pkgs {
		if seen[pkg.ID] {
			continue
		}
		seen[pkg.ID] = true

		if pkg.PkgPath == cfg.GeneratedPackage && len(pkg.Syntax) == 0 {
			l.logger.Debug("generated package %s not found", cfg.GeneratedPackage)
			continue
		}
		for _, e := range pkg.Errors {
			l.logger.Debug("%s: %s", pkg.PkgPath, e.Msg)
		}

		x := newExtractor(pkg, l.parser, problems)
		declarations := x.extract()
		result.Add(declarations...)
		result.Packages = append(result.Packages, pkg.PkgPath)
		l.logger.Debug("loaded %s: %d annotated declaration(s)", pkg.PkgPath, len(declarations))
	}
	sort.Strings(result.Packages)

	if err := problems.ErrorOrNil(); err != nil {
		return result, err
	}
	return result, nil
}
