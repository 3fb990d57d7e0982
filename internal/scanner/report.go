package scanner

import (
	"github.com/toyz/axonmeta/internal/decl"
	"github.com/toyz/axonmeta/internal/models"
)

// Report is the outcome of ScanModules
type Report struct {
	Round                 Round
	Modules               []*models.Module        // discovered modules in discovery order
	DefaultModule         *models.Module          // caller-supplied fallback module
	Index                 *ComponentIndex         // routing index
	Routes                []RouteOutcome          // one per routed definition, class then function
	Owned                 []*models.Definition    // definitions declared on module structs
	SkippedFunctions      []*decl.Declaration     // function declarations that provide nothing
	PropertyValues        []models.PropertyValue  // extracted property defaults
	DroppedPropertyValues []*decl.Declaration     // property_value declarations missing id or field
	Properties            BindResult              // property binding outcome
	Externals             LinkResult              // external linking outcome
}

// Graph returns every module of the graph, the default module last
func (r *Report) Graph() []*models.Module {
	graph := make([]*models.Module, 0, len(r.Modules)+1)
	graph = append(graph, r.Modules...)
	if r.DefaultModule != nil {
		graph = append(graph, r.DefaultModule)
	}
	return graph
}

// Fallbacks returns the definitions that went to the default module
func (r *Report) Fallbacks() []*models.Definition {
	return r.withStatus(FellBack)
}

// Duplicates returns the definitions skipped as already present
func (r *Report) Duplicates() []*models.Definition {
	return r.withStatus(Duplicate)
}

func (r *Report) withStatus(status RouteStatus) []*models.Definition {
	var defs []*models.Definition
	for _, outcome := range r.Routes {
		if outcome.Status == status {
			defs = append(defs, outcome.Definition)
		}
	}
	return defs
}

// Summary holds the counts printed after a scan
type Summary struct {
	Modules         int
	Definitions     int
	Fallbacks       int
	Duplicates      int
	BoundProperties int
	Externals       int
}

// Summary counts the report's contents
func (r *Report) Summary() Summary {
	summary := Summary{
		Modules:         len(r.Modules),
		Fallbacks:       len(r.Fallbacks()),
		Duplicates:      len(r.Duplicates()),
		BoundProperties: len(r.Properties.Bound),
		Externals:       len(r.Externals.Linked),
	}
	for _, m := range r.Graph() {
		summary.Definitions += len(m.AllDefinitions())
	}
	return summary
}
