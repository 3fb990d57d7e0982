package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axonmeta/internal/models"
)

func newDef(pkg, label string, params ...*models.Parameter) *models.Definition {
	return &models.Definition{PackageName: pkg, Label: label, Parameters: params}
}

func TestRouterRoute(t *testing.T) {
	core := scanModule("Core", "app/core")
	index, err := BuildComponentIndex([]*models.Module{core})
	require.NoError(t, err)

	def := models.NewDefaultModule("defaultModule", "app")
	logger := &recordingLogger{}
	router := NewRouter(index, def, logger)

	routed := router.Route(newDef("app/core/repo", "Repo"))
	assert.Equal(t, Routed, routed.Status)
	assert.Same(t, core, routed.Module)

	fallback := router.Route(newDef("other/pkg", "Thing"))
	assert.Equal(t, FellBack, fallback.Status)
	assert.Same(t, def, fallback.Module)

	assert.Equal(t, []string{"No module found for 'other/pkg.Thing'. Definition is added to 'defaultModule'"}, logger.messages("warn"))
	assert.Equal(t, []string{"Repo"}, labels(core.Definitions))
	assert.Equal(t, []string{"Thing"}, labels(def.Definitions))
}

func TestRouterDuplicates(t *testing.T) {
	core := scanModule("Core", "app/core")
	index, err := BuildComponentIndex([]*models.Module{core})
	require.NoError(t, err)

	def := models.NewDefaultModule("defaultModule", "app")
	logger := &recordingLogger{}
	router := NewRouter(index, def, logger)

	t.Run("scoped duplicate is skipped with a trace", func(t *testing.T) {
		first := router.Route(newDef("app/core", "Repo", models.NewParameter("db", "*sql.DB")))
		second := router.Route(newDef("app/core", "Repo", models.NewParameter("db", "*sql.DB")))

		assert.Equal(t, Routed, first.Status)
		assert.Equal(t, Duplicate, second.Status)
		assert.Len(t, core.Definitions, 1)
		assert.Contains(t, logger.messages("debug"),
			"skip addToModule - definition single app/core.Repo(class) -> module Core - already exists")
	})

	t.Run("different parameters are distinct", func(t *testing.T) {
		outcome := router.Route(newDef("app/core", "Repo", models.NewParameter("db", "*sql.Tx")))
		assert.Equal(t, Routed, outcome.Status)
		assert.Len(t, core.Definitions, 2)
	})

	t.Run("keyword and shape do not make a definition distinct", func(t *testing.T) {
		factory := newDef("app/core", "Repo", models.NewParameter("db", "*sql.DB"))
		factory.Keyword = models.KeywordFactory
		factory.Shape = models.FunctionShape

		outcome := router.Route(factory)
		assert.Equal(t, Duplicate, outcome.Status)
		assert.Len(t, core.Definitions, 2)
	})

	t.Run("repeated fallback warns once", func(t *testing.T) {
		before := len(logger.messages("warn"))

		router.Route(newDef("x", "Orphan"))
		again := router.Route(newDef("x", "Orphan"))

		assert.Equal(t, Duplicate, again.Status)
		assert.Len(t, logger.messages("warn"), before+1)
		assert.Len(t, def.Definitions, 1)
	})
}

func TestRouterRouteAllKeepsOrder(t *testing.T) {
	all := scanModule("All", "")
	index, err := BuildComponentIndex([]*models.Module{all})
	require.NoError(t, err)

	router := NewRouter(index, models.NewDefaultModule("defaultModule", ""), nil)
	outcomes := router.RouteAll([]*models.Definition{
		newDef("b", "B"), newDef("a", "A"), newDef("c", "C"),
	})

	require.Len(t, outcomes, 3)
	assert.Equal(t, []string{"B", "A", "C"}, labels(all.Definitions))
	for _, o := range outcomes {
		assert.Equal(t, Routed, o.Status)
	}
}

func TestRouteStatusString(t *testing.T) {
	assert.Equal(t, "routed", Routed.String())
	assert.Equal(t, "fell back", FellBack.String())
	assert.Equal(t, "duplicate", Duplicate.String())
	assert.Equal(t, "unknown", RouteStatus(42).String())
}
