// Package scanner builds the dependency-injection metadata graph from annotated
// declarations: modules, their component scan index, routed definitions,
// property defaults and definitions imported from other compilation units.
//
// A round runs in two steps. ScanSymbols checks that every module and
// definition declaration is resolvable and defers the round otherwise.
// ScanModules then builds the graph in a fixed order: index, route class
// definitions, route function definitions, bind properties, link externals.
package scanner

import (
	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	axonerrors "github.com/toyz/axonmeta/internal/errors"
	"github.com/toyz/axonmeta/internal/models"
)

// DefaultGeneratedPackage is the namespace searched for external definitions
// when no other package is configured.
const DefaultGeneratedPackage = "axongen"

// Option configures a MetaDataScanner
type Option func(*MetaDataScanner)

// WithGeneratedPackage sets the package holding external definitions
func WithGeneratedPackage(pkg string) Option {
	return func(s *MetaDataScanner) {
		s.generatedPackage = pkg
	}
}

// WithRound tags the scan with the given round
func WithRound(round Round) Option {
	return func(s *MetaDataScanner) {
		s.round = round
	}
}

// MetaDataScanner runs the scanning pipeline for one round
type MetaDataScanner struct {
	logger           Logger
	round            Round
	generatedPackage string
	modules          ModuleBuilder
	definitions      DefinitionBuilder

	scanned             bool
	validModules        []*decl.Declaration
	validDefinitions    []*decl.Declaration
	defaultProperties   []*decl.Declaration
	externalDefinitions []*decl.Declaration
}

// NewMetaDataScanner creates a scanner reporting to logger
func NewMetaDataScanner(logger Logger, opts ...Option) *MetaDataScanner {
	if logger == nil {
		logger = nopLogger{}
	}
	s := &MetaDataScanner{
		logger:           logger,
		round:            NewRound(1),
		generatedPackage: DefaultGeneratedPackage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Round returns the round this scanner belongs to
func (s *MetaDataScanner) Round() Round {
	return s.round
}

// ScanSymbols collects the round's declarations. When any module or definition
// declaration is unresolvable it returns them with a DeferredRoundError and
// keeps no state; the caller is expected to retry in a later round.
func (s *MetaDataScanner) ScanSymbols(provider decl.Provider) ([]*decl.Declaration, error) {
	s.reset()
	filter := NewValidityFilter(provider)

	validModules, invalidModules := filter.Partition(provider.ModuleDeclarations())
	validDefinitions, invalidDefinitions := filter.Partition(provider.DefinitionDeclarations())

	invalid := append(invalidModules, invalidDefinitions...)
	if len(invalid) > 0 {
		s.logger.Debug("Invalid definition symbols found.")
		names := make([]string, 0, len(invalid))
		for _, d := range invalid {
			s.logger.Debug("Invalid entity: %s", d)
			names = append(names, d.String())
		}
		return invalid, axonerrors.NewDeferredRoundError(names)
	}

	s.validModules = validModules
	s.validDefinitions = validDefinitions
	s.defaultProperties = filter.Valid(provider.PropertyValueDeclarations())
	s.logger.Debug("All symbols are valid")

	for _, d := range provider.GeneratedDeclarations(s.generatedPackage) {
		if d.HasAnnotation(annotations.DefinitionMarker) {
			s.externalDefinitions = append(s.externalDefinitions, d)
		}
	}
	if len(s.externalDefinitions) > 0 {
		s.logger.Debug("external definitions: %d", len(s.externalDefinitions))
	} else {
		s.logger.Debug("no external definition")
	}

	s.scanned = true
	return nil, nil
}

// ScanModules builds the metadata graph. It returns the discovered modules in a
// Report; the default module is carried separately and receives every
// definition no scan scope accepts. A scan scope claimed twice aborts the scan
// with a ScanScopeConflictError and no graph.
func (s *MetaDataScanner) ScanModules(defaultModule *models.Module) (*Report, error) {
	if !s.scanned {
		return nil, axonerrors.New(axonerrors.ValidationErrorCode, "ScanModules called before a successful ScanSymbols").
			WithContext("round", s.round.Number)
	}

	moduleList := s.scanClassModules()
	index, err := BuildComponentIndex(moduleList)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Round:         s.round,
		Modules:       moduleList,
		DefaultModule: defaultModule,
		Index:         index,
	}

	router := NewRouter(index, defaultModule, s.logger)
	classes, functions, owned := s.partitionDefinitions(moduleList)

	s.logger.Debug("scan definitions ...")
	report.Routes = append(report.Routes, router.RouteAll(s.buildClassDefinitions(classes))...)

	s.logger.Debug("scan functions ...")
	fnDefs, skipped := s.buildFunctionDefinitions(functions)
	report.SkippedFunctions = skipped
	report.Routes = append(report.Routes, router.RouteAll(fnDefs)...)

	report.Owned = s.attachOwnDefinitions(owned, moduleList)

	binder := NewPropertyBinder(s.logger)
	report.PropertyValues, report.DroppedPropertyValues = binder.Extract(s.defaultProperties)
	report.Properties = binder.Bind(report.PropertyValues, report.Graph())

	report.Externals = NewExternalLinker(index, s.logger).Link(s.externalDefinitions)

	return report, nil
}

func (s *MetaDataScanner) reset() {
	s.scanned = false
	s.validModules = nil
	s.validDefinitions = nil
	s.defaultProperties = nil
	s.externalDefinitions = nil
}

func (s *MetaDataScanner) scanClassModules() []*models.Module {
	s.logger.Debug("scan modules ...")
	var modules []*models.Module
	for _, d := range s.validModules {
		if !d.Kind.IsClass() {
			continue
		}
		modules = append(modules, s.modules.Build(d))
	}
	return modules
}

// partitionDefinitions splits definition declarations into class-shaped,
// function-shaped and those declared as methods of a module struct
func (s *MetaDataScanner) partitionDefinitions(modules []*models.Module) (classes, functions, owned []*decl.Declaration) {
	moduleSet := make(map[moduleKey]bool, len(modules))
	for _, m := range modules {
		moduleSet[keyOf(m)] = true
	}

	for _, d := range s.validDefinitions {
		switch {
		case d.Kind.IsClass():
			classes = append(classes, d)
		case d.Kind == decl.KindMethod && moduleSet[moduleKey{pkg: d.PackagePath, name: d.Receiver}]:
			owned = append(owned, d)
		case d.Kind.IsFunction():
			functions = append(functions, d)
		}
	}
	return classes, functions, owned
}

func (s *MetaDataScanner) buildClassDefinitions(decls []*decl.Declaration) []*models.Definition {
	defs := make([]*models.Definition, 0, len(decls))
	for _, d := range decls {
		defs = append(defs, s.definitions.BuildClass(d))
	}
	return defs
}

func (s *MetaDataScanner) buildFunctionDefinitions(decls []*decl.Declaration) ([]*models.Definition, []*decl.Declaration) {
	var defs []*models.Definition
	var skipped []*decl.Declaration
	for _, d := range decls {
		def, ok := s.definitions.BuildFunction(d)
		if !ok {
			s.logger.Debug("skip %s - function provides no value", d)
			skipped = append(skipped, d)
			continue
		}
		defs = append(defs, def)
	}
	return defs, skipped
}

// attachOwnDefinitions adds definitions declared as module methods to their module
func (s *MetaDataScanner) attachOwnDefinitions(decls []*decl.Declaration, modules []*models.Module) []*models.Definition {
	byKey := make(map[moduleKey]*models.Module, len(modules))
	for _, m := range modules {
		byKey[keyOf(m)] = m
	}

	var owned []*models.Definition
	for _, d := range decls {
		def, ok := s.definitions.BuildFunction(d)
		if !ok {
			s.logger.Debug("skip %s - function provides no value", d)
			continue
		}
		module := byKey[moduleKey{pkg: d.PackagePath, name: d.Receiver}]
		module.Own = append(module.Own, def)
		owned = append(owned, def)
	}
	return owned
}
