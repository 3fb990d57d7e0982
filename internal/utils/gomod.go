package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

// GoModParser provides utilities for parsing go.mod files
type GoModParser struct {
	fileReader *FileReader
}

// NewGoModParser creates a new go.mod parser with caching
func NewGoModParser(fileReader *FileReader) *GoModParser {
	if fileReader == nil {
		fileReader = NewFileReader()
	}
	return &GoModParser{
		fileReader: fileReader,
	}
}

// ParseModuleName extracts the module path from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", axonerrors.Newf(axonerrors.ConfigurationErrorCode, "file is not a go.mod file: %s", goModPath)
	}

	content, err := p.fileReader.ReadFile(cleanPath)
	if err != nil {
		return "", err
	}

	modFile, err := modfile.Parse(cleanPath, []byte(content), nil)
	if err != nil {
		return "", axonerrors.WrapConfigurationError("go.mod", "parse", err)
	}

	if modFile.Module == nil {
		return "", axonerrors.Newf(axonerrors.ConfigurationErrorCode, "no module declaration found in %s", cleanPath)
	}

	return modFile.Module.Mod.Path, nil
}

// FindGoModFile searches for go.mod starting from startDir and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", axonerrors.WrapFileSystemError("resolve", startDir, err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if p.fileReader.Exists(goModPath) {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", axonerrors.Newf(axonerrors.ConfigurationErrorCode, "go.mod file not found above %s", startDir).
		WithSuggestions("Run inside a Go module or pass --module explicitly")
}

// ModuleRoot returns the directory and module path of the module containing startDir
func (p *GoModParser) ModuleRoot(startDir string) (dir, modulePath string, err error) {
	goModPath, err := p.FindGoModFile(startDir)
	if err != nil {
		return "", "", err
	}

	modulePath, err = p.ParseModuleName(goModPath)
	if err != nil {
		return "", "", err
	}

	return filepath.Dir(goModPath), modulePath, nil
}

// ImportPath builds the import path of dir, which must lie inside the module rooted at root
func ImportPath(modulePath, root, dir string) (string, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", axonerrors.WrapFileSystemError("relativize", dir, err)
	}

	rel = filepath.ToSlash(rel)
	if rel == "." {
		return modulePath, nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", axonerrors.New(axonerrors.ConfigurationErrorCode,
			fmt.Sprintf("%s is outside module %s", dir, modulePath))
	}

	return modulePath + "/" + rel, nil
}
