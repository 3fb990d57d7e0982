package loader

import (
	"go/ast"
	"go/types"
)

// resolved reports whether the type expression and every identifier in it
// were resolved by the type checker
func (x *extractor) resolved(expr ast.Expr) bool {
	info := x.pkg.TypesInfo
	if info == nil {
		return false
	}
	if invalid(info.TypeOf(expr)) {
		return false
	}

	ok := true
	ast.Inspect(expr, func(n ast.Node) bool {
		if !ok {
			return false
		}
		id, isIdent := n.(*ast.Ident)
		if !isIdent || id.Name == "_" {
			return true
		}
		if info.Uses[id] == nil && info.Defs[id] == nil {
			ok = false
		}
		return ok
	})
	return ok
}

// objectResolved reports whether a declared package-level name has a valid type
func (x *extractor) objectResolved(name *ast.Ident) bool {
	info := x.pkg.TypesInfo
	if info == nil {
		return false
	}
	obj := info.Defs[name]
	return obj != nil && !invalid(obj.Type())
}

func invalid(t types.Type) bool {
	return t == nil || t == types.Typ[types.Invalid]
}
