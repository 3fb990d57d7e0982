package loader

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

// extractor walks the syntax of one package
type extractor struct {
	pkg      *packages.Package
	parser   *annotations.Parser
	problems *axonerrors.MultipleErrors
	broken   bool // the package could not be listed or parsed
}

func newExtractor(pkg *packages.Package, parser *annotations.Parser, problems *axonerrors.MultipleErrors) *extractor {
	x := &extractor{pkg: pkg, parser: parser, problems: problems}
	for _, e := range pkg.Errors {
		if breaksPackage(e) {
			x.broken = true
		}
	}
	return x
}

// breaksPackage reports whether e leaves the package without usable syntax or
// types. go list reports compile failures as "# <pkg>" list errors while
// building export data; the type checker reports the same problems again as
// type errors, so they are judged per declaration instead.
func breaksPackage(e packages.Error) bool {
	switch e.Kind {
	case packages.ParseError:
		return true
	case packages.ListError:
		return !strings.HasPrefix(e.Msg, "#")
	default:
		return false
	}
}

func (x *extractor) extract() []*decl.Declaration {
	var out []*decl.Declaration
	for _, file := range x.pkg.Syntax {
		for _, node := range file.Decls {
			switch d := node.(type) {
			case *ast.GenDecl:
				out = append(out, x.genDecl(d)...)
			case *ast.FuncDecl:
				if fn := x.funcDecl(d); fn != nil {
					out = append(out, fn)
				}
			}
		}
	}
	return out
}

func (x *extractor) genDecl(gen *ast.GenDecl) []*decl.Declaration {
	var out []*decl.Declaration
	for _, spec := range gen.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			if d := x.typeSpec(gen, s); d != nil {
				out = append(out, d)
			}
		case *ast.ValueSpec:
			out = append(out, x.valueSpec(gen, s)...)
		}
	}
	return out
}

func (x *extractor) typeSpec(gen *ast.GenDecl, spec *ast.TypeSpec) *decl.Declaration {
	st, isStruct := spec.Type.(*ast.StructType)
	target := annotations.TargetStruct
	if !isStruct {
		// annotations on other type kinds are reported as misplaced
		target = 0
	}

	found := x.annotations(specDoc(gen, spec.Doc), target)
	if len(found) == 0 || !isStruct {
		return nil
	}

	d := x.declaration(spec.Name.Name, decl.KindStruct, spec.Pos(), found)
	resolvable := !x.broken
	for _, field := range st.Fields.List {
		fieldAnnotations := x.annotations(fieldDoc(field), annotations.TargetField)
		for _, name := range fieldNames(field) {
			d.Params = append(d.Params, decl.Param{
				Name:        name,
				Type:        types.ExprString(field.Type),
				Annotations: fieldAnnotations,
			})
		}
		resolvable = resolvable && x.resolved(field.Type)
	}
	d.Resolvable = resolvable
	return d
}

func (x *extractor) valueSpec(gen *ast.GenDecl, spec *ast.ValueSpec) []*decl.Declaration {
	kind := decl.KindVar
	if gen.Tok == token.CONST {
		kind = decl.KindConst
	}

	found := x.annotations(specDoc(gen, spec.Doc), annotations.TargetValue)
	if len(found) == 0 {
		return nil
	}

	var out []*decl.Declaration
	for _, name := range spec.Names {
		d := x.declaration(name.Name, kind, name.Pos(), found)
		d.Resolvable = !x.broken && x.objectResolved(name)
		out = append(out, d)
	}
	return out
}

func (x *extractor) funcDecl(fn *ast.FuncDecl) *decl.Declaration {
	kind := decl.KindFunc
	target := annotations.TargetFunc
	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		kind = decl.KindMethod
		target = annotations.TargetMethod
	}

	found := x.annotations(fn.Doc, target)
	if len(found) == 0 {
		return nil
	}

	d := x.declaration(fn.Name.Name, kind, fn.Pos(), found)
	resolvable := !x.broken

	if kind == decl.KindMethod {
		recv := fn.Recv.List[0].Type
		d.Receiver = receiverName(recv)
		d.QualifiedName = x.pkg.PkgPath + "." + d.Receiver + "." + d.SimpleName
		resolvable = resolvable && x.resolved(recv)
	}

	for i, field := range fn.Type.Params.List {
		names := fieldNames(field)
		if len(names) == 0 {
			names = []string{fmt.Sprintf("p%d", i)}
		}
		for _, name := range names {
			d.Params = append(d.Params, decl.Param{Name: name, Type: types.ExprString(field.Type)})
		}
		resolvable = resolvable && x.resolved(field.Type)
	}

	if fn.Type.Results != nil {
		for _, field := range fn.Type.Results.List {
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for n := 0; n < count; n++ {
				d.Results = append(d.Results, types.ExprString(field.Type))
			}
			resolvable = resolvable && x.resolved(field.Type)
		}
	}

	d.Resolvable = resolvable
	return d
}

func (x *extractor) declaration(name string, kind decl.Kind, pos token.Pos, found []*annotations.Annotation) *decl.Declaration {
	return &decl.Declaration{
		SimpleName:    name,
		QualifiedName: x.pkg.PkgPath + "." + name,
		PackagePath:   x.pkg.PkgPath,
		Kind:          kind,
		Annotations:   found,
		Position:      x.location(pos),
	}
}

// annotations parses every //axon:: line of doc. Lines that fail to parse or
// are placed on the wrong target are recorded as problems and left out.
func (x *extractor) annotations(doc *ast.CommentGroup, target annotations.Target) []*annotations.Annotation {
	if doc == nil {
		return nil
	}

	var found []*annotations.Annotation
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}

		a, err := x.parser.ParseAnnotation(comment.Text, x.location(comment.Slash))
		if err == nil {
			err = x.parser.CheckTarget(a, target)
		}
		if err != nil {
			x.record(err)
			continue
		}
		found = append(found, a)
	}
	return found
}

func (x *extractor) record(err error) {
	var axonErr axonerrors.AxonError
	if axonerrors.As(err, &axonErr) {
		x.problems.Add(axonErr)
		return
	}
	x.problems.Add(axonerrors.Wrap(axonerrors.SyntaxErrorCode, err.Error(), err))
}

func (x *extractor) location(pos token.Pos) annotations.SourceLocation {
	if x.pkg.Fset == nil || !pos.IsValid() {
		return annotations.SourceLocation{}
	}
	p := x.pkg.Fset.Position(pos)
	return annotations.SourceLocation{File: p.Filename, Line: p.Line, Column: p.Column}
}

// specDoc returns the doc of an ast.Spec, or the GenDecl doc for an ungrouped declaration
func specDoc(gen *ast.GenDecl, doc *ast.CommentGroup) *ast.CommentGroup {
	if doc != nil {
		return doc
	}
	if !gen.Lparen.IsValid() {
		return gen.Doc
	}
	return nil
}

// fieldDoc merges a field's leading doc and trailing line comment
func fieldDoc(field *ast.Field) *ast.CommentGroup {
	switch {
	case field.Doc == nil:
		return field.Comment
	case field.Comment == nil:
		return field.Doc
	default:
		list := append(append([]*ast.Comment(nil), field.Doc.List...), field.Comment.List...)
		return &ast.CommentGroup{List: list}
	}
}

// fieldNames returns the declared names of a field; an embedded field is named after its type
func fieldNames(field *ast.Field) []string {
	if len(field.Names) == 0 {
		if name := receiverName(field.Type); name != "" {
			return []string{name}
		}
		return nil
	}
	names := make([]string, 0, len(field.Names))
	for _, n := range field.Names {
		names = append(names, n.Name)
	}
	return names
}

// receiverName strips pointers, type arguments and package qualifiers from a type expression
func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.ParenExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}
