package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

// Prefix introduces every annotation inside a line comment
const Prefix = "axon::"

// annotationAST is the grammar root: axon::<name> <argument>*
type annotationAST struct {
	Namespace string         `parser:"@Word '::'"`
	Name      string         `parser:"@Word"`
	Arguments []*argumentAST `parser:"@@*"`
}

type argumentAST struct {
	Named      *namedAST `parser:"  @@"`
	Positional *valueAST `parser:"| @@"`
}

type namedAST struct {
	Key   string    `parser:"@Flag"`
	Value *valueAST `parser:"( '=' @@ )?"`
}

type valueAST struct {
	Quoted *string `parser:"  @String"`
	Bare   *string `parser:"| @Word"`
}

func (v *valueAST) text() string {
	if v.Quoted != nil {
		return *v.Quoted
	}
	if v.Bare != nil {
		return *v.Bare
	}
	return ""
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Separator", Pattern: `::`},
	{Name: "Flag", Pattern: `-[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Word", Pattern: `[^\s"=:]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Parser parses //axon:: comment lines and validates them against a Registry
type Parser struct {
	grammar  *participle.Parser[annotationAST]
	registry Registry
}

// NewParser creates a new annotation parser backed by registry
func NewParser(registry Registry) *Parser {
	return &Parser{
		grammar: participle.MustBuild[annotationAST](
			participle.Lexer(annotationLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
		),
		registry: registry,
	}
}

// IsAnnotation reports whether a comment line carries an //axon:: annotation
func IsAnnotation(comment string) bool {
	_, ok := stripComment(comment)
	return ok
}

func stripComment(comment string) (string, bool) {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "//") {
		return "", false
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))
	if !strings.HasPrefix(text, Prefix) {
		return "", false
	}
	return text, true
}

// ParseAnnotation parses a single comment line. The comment must carry the //axon:: prefix.
func (p *Parser) ParseAnnotation(comment string, location SourceLocation) (*Annotation, error) {
	loc := axonerrors.SourceLocation{File: location.File, Line: location.Line, Column: location.Column}

	text, ok := stripComment(comment)
	if !ok {
		return nil, axonerrors.NewSyntaxError("annotation must start with '//axon::'", comment, loc)
	}

	ast, err := p.grammar.ParseString(location.File, text)
	if err != nil {
		return nil, axonerrors.NewSyntaxError(fmt.Sprintf("malformed annotation: %v", err), comment, loc)
	}

	marker, err := ParseMarker(ast.Name)
	if err != nil {
		return nil, axonerrors.NewSyntaxError(err.Error(), comment, loc)
	}

	schema, err := p.registry.GetSchema(marker)
	if err != nil {
		return nil, axonerrors.NewSchemaError(ast.Name, err.Error(), loc)
	}

	annotation := &Annotation{
		Marker:     marker,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        comment,
	}

	for _, arg := range ast.Arguments {
		if arg.Positional != nil {
			annotation.Args = append(annotation.Args, arg.Positional.text())
			continue
		}

		key := strings.TrimPrefix(arg.Named.Key, "-")
		spec, exists := schema.Parameters[key]
		if !exists {
			return nil, axonerrors.NewSchemaError(ast.Name, fmt.Sprintf("unknown parameter '%s'", key), loc)
		}

		if arg.Named.Value == nil {
			if spec.Type != BoolType {
				return nil, axonerrors.NewSchemaError(ast.Name, fmt.Sprintf("parameter '%s' requires a value", key), loc)
			}
			annotation.Parameters[key] = true
			continue
		}

		value, err := spec.Type.convert(arg.Named.Value.text())
		if err != nil {
			return nil, axonerrors.NewSchemaError(ast.Name, fmt.Sprintf("parameter '%s' expects %s: %v", key, spec.Type, err), loc)
		}
		annotation.Parameters[key] = value
	}

	if n := len(annotation.Args); n < schema.MinArgs || n > schema.MaxArgs {
		return nil, axonerrors.NewSchemaError(ast.Name,
			fmt.Sprintf("expects %s positional argument(s), got %d", arity(schema), n), loc)
	}

	return annotation, nil
}

// CheckTarget verifies that the annotation's marker may be attached to target
func (p *Parser) CheckTarget(annotation *Annotation, target Target) error {
	schema, err := p.registry.GetSchema(annotation.Marker)
	if err != nil {
		return err
	}
	if schema.Targets&target == 0 {
		loc := axonerrors.SourceLocation{
			File:   annotation.Location.File,
			Line:   annotation.Location.Line,
			Column: annotation.Location.Column,
		}
		return axonerrors.NewSchemaError(annotation.ShortName(), fmt.Sprintf("cannot be applied to a %s", target), loc)
	}
	return nil
}

func arity(schema Schema) string {
	if schema.MinArgs == schema.MaxArgs {
		return fmt.Sprintf("%d", schema.MinArgs)
	}
	return fmt.Sprintf("%d to %d", schema.MinArgs, schema.MaxArgs)
}
