package scanner

import (
	"github.com/toyz/axonmeta/internal/models"
)

// RouteStatus describes what the router did with a definition
type RouteStatus int

const (
	// Routed means a scanning module accepted the definition
	Routed RouteStatus = iota
	// FellBack means no module accepted it and it went to the default module
	FellBack
	// Duplicate means the target module already owned an equal definition
	Duplicate
)

// String returns the status name
func (s RouteStatus) String() string {
	switch s {
	case Routed:
		return "routed"
	case FellBack:
		return "fell back"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// RouteOutcome is the result of routing one definition
type RouteOutcome struct {
	Definition *models.Definition
	Module     *models.Module
	Status     RouteStatus
}

// Router assigns definitions to the module owning their package
type Router struct {
	index         *ComponentIndex
	defaultModule *models.Module
	logger        Logger
}

// NewRouter creates a router over index that falls back to defaultModule
func NewRouter(index *ComponentIndex, defaultModule *models.Module, logger Logger) *Router {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Router{
		index:         index,
		defaultModule: defaultModule,
		logger:        logger,
	}
}

// Route appends def to the first accepting module in index order, or to the
// default module with a warning. Structurally equal definitions are skipped.
func (r *Router) Route(def *models.Definition) RouteOutcome {
	module, found := r.index.Find(def.PackageName)
	if !found {
		module = r.defaultModule
	}

	if !module.AddDefinition(def) {
		r.logger.Debug("skip addToModule - definition %s -> module %s - already exists", def, module)
		return RouteOutcome{Definition: def, Module: module, Status: Duplicate}
	}

	if !found {
		r.logger.Warn("No module found for '%s'. Definition is added to '%s'", def.QualifiedName(), module.Name)
		return RouteOutcome{Definition: def, Module: module, Status: FellBack}
	}

	return RouteOutcome{Definition: def, Module: module, Status: Routed}
}

// RouteAll routes defs in order
func (r *Router) RouteAll(defs []*models.Definition) []RouteOutcome {
	outcomes := make([]RouteOutcome, 0, len(defs))
	for _, def := range defs {
		outcomes = append(outcomes, r.Route(def))
	}
	return outcomes
}
