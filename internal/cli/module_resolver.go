package cli

import (
	"path/filepath"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
	"github.com/toyz/axonmeta/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	goMod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		goMod: utils.NewGoModParser(nil),
	}
}

// ResolveModuleName resolves the module path of the code under dir.
// If customModule is provided, it uses that; otherwise reads from go.mod
func (r *ModuleResolver) ResolveModuleName(customModule, dir string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	_, moduleName, err := r.goMod.ModuleRoot(dir)
	if err != nil {
		return "", axonerrors.Wrap(axonerrors.ConfigurationErrorCode, "failed to determine module name", err).
			WithSuggestions("Run inside a Go module or pass --module")
	}

	return moduleName, nil
}

// BuildPackagePath builds the full import path for a package directory
func (r *ModuleResolver) BuildPackagePath(packageDir string) (string, error) {
	absPackageDir, err := filepath.Abs(packageDir)
	if err != nil {
		return "", axonerrors.WrapFileSystemError("resolve", packageDir, err)
	}

	root, moduleName, err := r.goMod.ModuleRoot(absPackageDir)
	if err != nil {
		return "", err
	}

	return utils.ImportPath(moduleName, root, absPackageDir)
}
