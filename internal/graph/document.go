// Package graph turns a scan report into a serializable document for the
// downstream code generator.
package graph

import (
	"github.com/toyz/axonmeta/internal/models"
	"github.com/toyz/axonmeta/internal/scanner"
)

// Document is the serialized metadata graph of one round
type Document struct {
	Round       string   `json:"round" yaml:"round" toml:"round"`
	RoundNumber int      `json:"round_number" yaml:"round_number" toml:"round_number"`
	Modules     []Module `json:"modules" yaml:"modules" toml:"modules"`
	Summary     Summary  `json:"summary" yaml:"summary" toml:"summary"`
}

// Module is a module and everything routed into it
type Module struct {
	Name           string       `json:"name" yaml:"name" toml:"name"`
	Package        string       `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty"`
	Default        bool         `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Scan           *Scan        `json:"scan,omitempty" yaml:"scan,omitempty" toml:"scan,omitempty"`
	Includes       []string     `json:"includes,omitempty" yaml:"includes,omitempty" toml:"includes,omitempty"`
	CreatedAtStart bool         `json:"created_at_start,omitempty" yaml:"created_at_start,omitempty" toml:"created_at_start,omitempty"`
	Definitions    []Definition `json:"definitions,omitempty" yaml:"definitions,omitempty" toml:"definitions,omitempty"`
	Externals      []External   `json:"externals,omitempty" yaml:"externals,omitempty" toml:"externals,omitempty"`
}

// Scan is a module's component scan scope; an empty package is a catch-all
type Scan struct {
	Package  string `json:"package" yaml:"package" toml:"package"`
	CatchAll bool   `json:"catch_all,omitempty" yaml:"catch_all,omitempty" toml:"catch_all,omitempty"`
}

// Definition is one injectable component
type Definition struct {
	Name           string      `json:"name" yaml:"name" toml:"name"`
	Package        string      `json:"package" yaml:"package" toml:"package"`
	Label          string      `json:"label" yaml:"label" toml:"label"`
	Keyword        string      `json:"keyword" yaml:"keyword" toml:"keyword"`
	Shape          string      `json:"shape" yaml:"shape" toml:"shape"`
	Own            bool        `json:"own,omitempty" yaml:"own,omitempty" toml:"own,omitempty"`
	Qualifier      string      `json:"qualifier,omitempty" yaml:"qualifier,omitempty" toml:"qualifier,omitempty"`
	Binds          []string    `json:"binds,omitempty" yaml:"binds,omitempty" toml:"binds,omitempty"`
	CreatedAtStart bool        `json:"created_at_start,omitempty" yaml:"created_at_start,omitempty" toml:"created_at_start,omitempty"`
	Parameters     []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty" toml:"parameters,omitempty"`
}

// Parameter is one definition input
type Parameter struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Type     string `json:"type" yaml:"type" toml:"type"`
	Property string `json:"property,omitempty" yaml:"property,omitempty" toml:"property,omitempty"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

// External is a definition contributed by another compilation unit
type External struct {
	Package string `json:"package" yaml:"package" toml:"package"`
	Name    string `json:"name" yaml:"name" toml:"name"`
}

// Summary carries the scan counters
type Summary struct {
	Modules         int `json:"modules" yaml:"modules" toml:"modules"`
	Definitions     int `json:"definitions" yaml:"definitions" toml:"definitions"`
	Fallbacks       int `json:"fallbacks" yaml:"fallbacks" toml:"fallbacks"`
	Duplicates      int `json:"duplicates" yaml:"duplicates" toml:"duplicates"`
	BoundProperties int `json:"bound_properties" yaml:"bound_properties" toml:"bound_properties"`
	Externals       int `json:"externals" yaml:"externals" toml:"externals"`
}

// FromReport builds the document of a report. Modules keep discovery order and
// the default module comes last.
func FromReport(report *scanner.Report) *Document {
	doc := &Document{
		Round:       report.Round.ID.String(),
		RoundNumber: report.Round.Number,
	}

	for _, m := range report.Graph() {
		doc.Modules = append(doc.Modules, fromModule(m))
	}

	s := report.Summary()
	doc.Summary = Summary{
		Modules:         s.Modules,
		Definitions:     s.Definitions,
		Fallbacks:       s.Fallbacks,
		Duplicates:      s.Duplicates,
		BoundProperties: s.BoundProperties,
		Externals:       s.Externals,
	}
	return doc
}

func fromModule(m *models.Module) Module {
	out := Module{
		Name:           m.Name,
		Package:        m.PackagePath,
		Default:        m.IsDefault,
		Includes:       m.Includes,
		CreatedAtStart: m.CreatedAtStart,
	}
	if m.ComponentScan != nil {
		out.Scan = &Scan{Package: m.ComponentScan.PackageName, CatchAll: m.ComponentScan.IsCatchAll()}
	}
	for _, def := range m.Own {
		d := fromDefinition(def)
		d.Own = true
		out.Definitions = append(out.Definitions, d)
	}
	for _, def := range m.Definitions {
		out.Definitions = append(out.Definitions, fromDefinition(def))
	}
	for _, ext := range m.ExternalDefinitions {
		out.Externals = append(out.Externals, External{Package: ext.TargetPackage, Name: ext.Name})
	}
	return out
}

func fromDefinition(def *models.Definition) Definition {
	out := Definition{
		Name:           def.QualifiedName(),
		Package:        def.PackageName,
		Label:          def.Label,
		Keyword:        def.Keyword.String(),
		Shape:          def.Shape.String(),
		Qualifier:      def.Qualifier,
		Binds:          def.Binds,
		CreatedAtStart: def.CreatedAtStart,
	}
	for _, p := range def.Parameters {
		out.Parameters = append(out.Parameters, Parameter{
			Name:     p.Name,
			Type:     p.Type,
			Property: p.PropertyKey,
			Default:  p.DefaultField,
		})
	}
	return out
}
