package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	axonerrors "github.com/toyz/axonmeta/internal/errors"
	"github.com/toyz/axonmeta/internal/models"
)

func sampleProvider() *decl.MemoryProvider {
	appModule := moduleDecl("app", "AppModule", "app/core")
	webModule := moduleDecl("app", "WebModule", "app/web")
	plainModule := moduleDecl("app", "PlainModule")

	ownMethod := funcDecl("app", "Clock", []string{"Clock"})
	ownMethod.Kind = decl.KindMethod
	ownMethod.Receiver = "AppModule"

	return decl.NewMemoryProvider(
		appModule,
		webModule,
		plainModule,
		classDecl("app/core/repo", "Repo", propertyField("dsn", "string", "db.dsn")),
		classDecl("app/web", "Handler", decl.Param{Name: "repo", Type: "*repo.Repo"}),
		classDecl("misc", "Stray"),
		funcDecl("app/web/mw", "NewLogger", []string{"*Logger"}),
		funcDecl("app/core", "Bootstrap", nil),
		ownMethod,
		propertyValueDecl("app/config", "DSN", "db.dsn"),
		externalDecl("axongen", "LibRepo", "app/core/lib"),
		externalDecl("axongen", "VendorThing", "vendor"),
	)
}

func runScan(t *testing.T, provider decl.Provider, logger Logger) *Report {
	t.Helper()
	s := NewMetaDataScanner(logger)
	invalid, err := s.ScanSymbols(provider)
	require.NoError(t, err)
	require.Empty(t, invalid)

	report, err := s.ScanModules(models.NewDefaultModule("defaultModule", "app"))
	require.NoError(t, err)
	return report
}

func moduleByName(t *testing.T, report *Report, name string) *models.Module {
	t.Helper()
	for _, m := range report.Modules {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("module %s not found", name)
	return nil
}

func TestScanModules(t *testing.T) {
	logger := &recordingLogger{}
	report := runScan(t, sampleProvider(), logger)

	app := moduleByName(t, report, "AppModule")
	web := moduleByName(t, report, "WebModule")
	plain := moduleByName(t, report, "PlainModule")

	t.Run("modules are discovered in order", func(t *testing.T) {
		names := make([]string, 0, len(report.Modules))
		for _, m := range report.Modules {
			names = append(names, m.Name)
		}
		assert.Equal(t, []string{"AppModule", "WebModule", "PlainModule"}, names)
		assert.Nil(t, plain.ComponentScan)
		assert.Equal(t, 2, report.Index.Len())
	})

	t.Run("definitions route by package prefix", func(t *testing.T) {
		assert.Equal(t, []string{"Repo"}, labels(app.Definitions))
		assert.Equal(t, []string{"Handler", "NewLogger"}, labels(web.Definitions))
		assert.Empty(t, plain.Definitions)
	})

	t.Run("unrouted definitions fall back", func(t *testing.T) {
		assert.Equal(t, []string{"Stray"}, labels(report.DefaultModule.Definitions))
		assert.Equal(t, []string{"Stray"}, labels(report.Fallbacks()))
		assert.Equal(t, []string{"No module found for 'misc.Stray'. Definition is added to 'defaultModule'"},
			logger.messages("warn"))
	})

	t.Run("module methods stay on the module", func(t *testing.T) {
		assert.Equal(t, []string{"AppModule.Clock"}, labels(app.Own))
		assert.Equal(t, []string{"AppModule.Clock"}, labels(report.Owned))
	})

	t.Run("functions without results are skipped", func(t *testing.T) {
		require.Len(t, report.SkippedFunctions, 1)
		assert.Equal(t, "Bootstrap", report.SkippedFunctions[0].SimpleName)
	})

	t.Run("properties are bound", func(t *testing.T) {
		require.Len(t, report.Properties.Bound, 1)
		assert.Equal(t, "app/config.DSN", app.Definitions[0].Parameters[0].DefaultField)
	})

	t.Run("externals are linked to scanning modules only", func(t *testing.T) {
		assert.Equal(t, []models.ExternalDefinition{{TargetPackage: "app/core/lib", Name: "LibRepo"}}, app.ExternalDefinitions)
		assert.Empty(t, report.DefaultModule.ExternalDefinitions)
		assert.Len(t, report.Externals.Unowned, 1)
	})

	t.Run("traces", func(t *testing.T) {
		debug := logger.messages("debug")
		assert.Contains(t, debug, "All symbols are valid")
		assert.Contains(t, debug, "external definitions: 2")
	})

	t.Run("summary", func(t *testing.T) {
		assert.Equal(t, Summary{
			Modules:         3,
			Definitions:     5,
			Fallbacks:       1,
			BoundProperties: 1,
			Externals:       1,
		}, report.Summary())
	})
}

func TestScanModulesDeterministic(t *testing.T) {
	first := runScan(t, sampleProvider(), nil)
	second := runScan(t, sampleProvider(), nil)

	require.Len(t, second.Graph(), len(first.Graph()))
	for i, m := range first.Graph() {
		other := second.Graph()[i]
		assert.Equal(t, m.Name, other.Name)
		assert.Equal(t, labels(m.AllDefinitions()), labels(other.AllDefinitions()))
		assert.Equal(t, m.ExternalDefinitions, other.ExternalDefinitions)
	}
}

func TestScanModulesIdempotentRouting(t *testing.T) {
	provider := sampleProvider()
	provider.Add(classDecl("app/web", "Handler", decl.Param{Name: "repo", Type: "*repo.Repo"}))
	provider.Add(classDecl("misc", "Stray"))

	logger := &recordingLogger{}
	report := runScan(t, provider, logger)

	web := moduleByName(t, report, "WebModule")
	assert.Equal(t, []string{"Handler", "NewLogger"}, labels(web.Definitions))
	assert.Len(t, report.DefaultModule.Definitions, 1)
	assert.Len(t, report.Duplicates(), 2)
	assert.Len(t, logger.messages("warn"), 1)
}

func TestScanModulesScopeConflict(t *testing.T) {
	provider := decl.NewMemoryProvider(
		moduleDecl("app", "First", "app/shared"),
		moduleDecl("app", "Second", "app/shared"),
		classDecl("app/shared", "Thing"),
	)

	s := NewMetaDataScanner(nil)
	_, err := s.ScanSymbols(provider)
	require.NoError(t, err)

	report, err := s.ScanModules(models.NewDefaultModule("defaultModule", "app"))
	assert.Nil(t, report)
	require.Error(t, err)
	assert.True(t, axonerrors.IsScanScopeConflict(err))
}

func TestScanSymbolsDefers(t *testing.T) {
	broken := classDecl("app/core", "Broken")
	broken.Resolvable = false
	brokenModule := moduleDecl("app", "Half", "app")
	brokenModule.Resolvable = false

	provider := sampleProvider()
	provider.Add(broken, brokenModule)

	logger := &recordingLogger{}
	s := NewMetaDataScanner(logger)
	invalid, err := s.ScanSymbols(provider)

	require.Error(t, err)
	assert.True(t, axonerrors.IsDeferred(err))
	assert.Equal(t, []*decl.Declaration{brokenModule, broken}, invalid)
	assert.Contains(t, logger.messages("debug"), "Invalid definition symbols found.")
	assert.NotContains(t, logger.messages("debug"), "All symbols are valid")

	_, err = s.ScanModules(models.NewDefaultModule("defaultModule", "app"))
	assert.Error(t, err, "a deferred round keeps no state")
}

func TestScanSymbolsIgnoresInvalidPropertyValues(t *testing.T) {
	provider := sampleProvider()
	bad := propertyValueDecl("app/config", "Broken", "db.dsn")
	bad.Resolvable = false
	provider.Add(bad)

	report := runScan(t, provider, nil)
	assert.Equal(t, []models.PropertyValue{{ID: "db.dsn", Field: "app/config.DSN"}}, report.PropertyValues)
}

func TestScanSymbolsWithoutExternals(t *testing.T) {
	provider := decl.NewMemoryProvider(moduleDecl("app", "AppModule", ""))
	logger := &recordingLogger{}

	s := NewMetaDataScanner(logger, WithGeneratedPackage("gen"), WithRound(NewRound(2)))
	_, err := s.ScanSymbols(provider)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Round().Number)
	assert.Contains(t, logger.messages("debug"), "no external definition")
}

func TestModuleBuilderReadsParameters(t *testing.T) {
	d := moduleDecl("app", "AppModule", "app")
	d.Annotations[0] = withParam(withParam(ann(annotations.ModuleMarker), "Includes", []string{"DbModule"}), "CreatedAtStart", true)

	var builder ModuleBuilder
	m := builder.Build(d)

	assert.Equal(t, []string{"DbModule"}, m.Includes)
	assert.True(t, m.CreatedAtStart)
	require.NotNil(t, m.ComponentScan)
	assert.Equal(t, "app", m.ComponentScan.PackageName)
}
