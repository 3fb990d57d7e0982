package cli

import (
	"context"
	"fmt"

	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	axonerrors "github.com/toyz/axonmeta/internal/errors"
	"github.com/toyz/axonmeta/internal/loader"
	"github.com/toyz/axonmeta/internal/models"
	"github.com/toyz/axonmeta/internal/scanner"
	"github.com/toyz/axonmeta/internal/utils"
)

// DeclarationSource produces the declarations seen by one round
type DeclarationSource interface {
	Declarations(ctx context.Context, round scanner.Round) (decl.Provider, error)
}

// packageSource loads declarations from Go packages on every round
type packageSource struct {
	loader *loader.PackageLoader
	config loader.Config
}

// NewPackageSource creates a source that reloads cfg on every round
func NewPackageSource(l *loader.PackageLoader, cfg loader.Config) DeclarationSource {
	return &packageSource{loader: l, config: cfg}
}

func (s *packageSource) Declarations(ctx context.Context, _ scanner.Round) (decl.Provider, error) {
	result, err := s.loader.Load(ctx, s.config)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Processor runs scan rounds until the declarations resolve
type Processor struct {
	config      Config
	source      DeclarationSource
	diagnostics *utils.DiagnosticSystem
}

// NewProcessor creates a processor reading declarations from source
func NewProcessor(config Config, source DeclarationSource, diagnostics *utils.DiagnosticSystem) *Processor {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.LevelFromFlags(config.Verbose, false))
	}
	return &Processor{
		config:      config,
		source:      source,
		diagnostics: diagnostics,
	}
}

// NewPackageProcessor creates a processor over the packages named by config
func NewPackageProcessor(config Config, diagnostics *utils.DiagnosticSystem) *Processor {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.LevelFromFlags(config.Verbose, false))
	}
	l := loader.New(annotations.DefaultRegistry(), diagnostics)
	source := NewPackageSource(l, loader.Config{
		Dir:              config.Dir,
		Patterns:         config.Patterns,
		GeneratedPackage: config.GeneratedPackage,
	})
	return NewProcessor(config, source, diagnostics)
}

// Run scans rounds 1..MaxRounds. A deferred round is retried with freshly
// loaded declarations; any other error ends the run.
func (p *Processor) Run(ctx context.Context) (*scanner.Report, error) {
	maxRounds := p.config.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	var deferred error
	for n := 1; n <= maxRounds; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		round := scanner.NewRound(n)
		p.diagnostics.PhaseHeader(fmt.Sprintf("Round %d", n))
		p.diagnostics.Debug("round id %s", round.ID)

		report, err := p.runRound(ctx, round)
		if err == nil {
			p.diagnostics.PhaseItem("%s resolved", round)
			return report, nil
		}
		if !axonerrors.IsDeferred(err) {
			return nil, err
		}

		deferred = err
		p.diagnostics.Warn("%s deferred: %s", round, err.Error())
	}

	return nil, deferred
}

func (p *Processor) runRound(ctx context.Context, round scanner.Round) (*scanner.Report, error) {
	provider, err := p.source.Declarations(ctx, round)
	if err != nil {
		return nil, err
	}

	s := scanner.NewMetaDataScanner(p.diagnostics,
		scanner.WithGeneratedPackage(p.config.GeneratedPackage),
		scanner.WithRound(round),
	)

	if _, err := s.ScanSymbols(provider); err != nil {
		return nil, err
	}
	p.diagnostics.PhaseItem("symbols scanned")

	defaultModule := models.NewDefaultModule(p.config.DefaultModule, p.config.ModuleName)
	report, err := s.ScanModules(defaultModule)
	if err != nil {
		return nil, err
	}
	p.diagnostics.PhaseItem("%d module(s) routed", len(report.Modules))
	return report, nil
}
