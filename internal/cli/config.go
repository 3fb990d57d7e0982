package cli

import (
	"path/filepath"
	"strings"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
	"github.com/toyz/axonmeta/internal/graph"
	"github.com/toyz/axonmeta/internal/scanner"
)

const (
	// DefaultModuleName names the fallback module when none is configured
	DefaultModuleName = "defaultModule"

	// DefaultMaxRounds bounds the deferral loop
	DefaultMaxRounds = 3
)

// Config holds the configuration for a scan
type Config struct {
	// Dir is the working directory patterns are resolved against
	Dir string

	// Patterns is the list of directories or package patterns to scan
	Patterns []string

	// ModuleName is the module path of the scanned code.
	// If empty, it is read from go.mod
	ModuleName string

	// DefaultModule names the module that receives unmatched definitions
	DefaultModule string

	// GeneratedPackage is the import path holding generated definition markers.
	// If empty, it is <ModuleName>/axongen
	GeneratedPackage string

	// MaxRounds is the number of rounds tried before a deferral becomes fatal
	MaxRounds int

	// Format is the graph encoding
	Format graph.Format

	// Output is the graph destination, stdout when empty or "-"
	Output string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// Normalize fills defaults and validates the configuration
func (c *Config) Normalize(resolver *ModuleResolver) error {
	if c.Dir == "" {
		c.Dir = "."
	}
	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return axonerrors.WrapFileSystemError("resolve", c.Dir, err)
	}
	c.Dir = dir

	if len(c.Patterns) == 0 {
		c.Patterns = []string{"./..."}
	}

	if resolver == nil {
		resolver = NewModuleResolver()
	}
	moduleName, err := resolver.ResolveModuleName(c.ModuleName, c.Dir)
	if err != nil {
		return err
	}
	c.ModuleName = moduleName

	if c.DefaultModule == "" {
		c.DefaultModule = DefaultModuleName
	}
	if c.GeneratedPackage == "" {
		c.GeneratedPackage = c.ModuleName + "/" + scanner.DefaultGeneratedPackage
	}

	if c.MaxRounds == 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	if c.MaxRounds < 0 {
		return axonerrors.Newf(axonerrors.ConfigurationErrorCode, "max rounds must be positive, got %d", c.MaxRounds)
	}

	format, err := graph.ParseFormat(string(c.Format))
	if err != nil {
		return err
	}
	c.Format = format

	c.Output = strings.TrimSpace(c.Output)
	return nil
}

// WritesToStdout reports whether the graph goes to stdout
func (c *Config) WritesToStdout() bool {
	return c.Output == "" || c.Output == "-"
}
