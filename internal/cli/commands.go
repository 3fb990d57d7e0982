package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/axonmeta/internal/graph"
	"github.com/toyz/axonmeta/internal/models"
	"github.com/toyz/axonmeta/internal/scanner"
	"github.com/toyz/axonmeta/internal/utils"
)

// Version is set at build time
var Version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	Config  string `help:"Path to a json, yaml or toml configuration file" type:"path" env:"AXONMETA_CONFIG"`
	Verbose bool   `help:"Enable detailed logging" short:"v" xor:"verbosity"`
	Quiet   bool   `help:"Only print errors" short:"q" xor:"verbosity"`
}

// Diagnostics builds the diagnostic system for the selected verbosity
func (g *Globals) Diagnostics() *utils.DiagnosticSystem {
	return utils.NewDiagnosticSystem(utils.LevelFromFlags(g.Verbose, g.Quiet))
}

// CLI is the command tree of the axonmeta binary
type CLI struct {
	Globals

	Scan    ScanCmd    `cmd:"" help:"Scan packages and write the module graph" default:"withargs"`
	Modules ModulesCmd `cmd:"" help:"Print the discovered modules and their scan scopes"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// ScanOptions select the code to scan
type ScanOptions struct {
	Patterns         []string `arg:"" optional:"" help:"Directories or package patterns to scan" default:"./..."`
	Dir              string   `help:"Working directory patterns are resolved against" default:"." type:"existingdir"`
	Module           string   `help:"Module path of the scanned code (default: read from go.mod)"`
	DefaultModule    string   `help:"Name of the module receiving unmatched definitions" default:"defaultModule"`
	GeneratedPackage string   `help:"Import path of the package holding generated definitions (default: <module>/axongen)"`
	MaxRounds        int      `help:"Rounds tried while declarations are unresolved" default:"3"`
}

// config resolves the options into a processor configuration
func (o *ScanOptions) config(globals *Globals) (Config, error) {
	patterns, err := NewDirectoryScanner(o.Dir).Patterns(o.Patterns)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Dir:              o.Dir,
		Patterns:         patterns,
		ModuleName:       o.Module,
		DefaultModule:    o.DefaultModule,
		GeneratedPackage: o.GeneratedPackage,
		MaxRounds:        o.MaxRounds,
		Verbose:          globals.Verbose,
	}
	return cfg, nil
}

// ScanCmd builds the module graph and writes it out
type ScanCmd struct {
	ScanOptions `embed:""`

	Format string `help:"Graph encoding" enum:"json,yaml,yml,toml" default:"json" short:"f"`
	Output string `help:"Graph destination file, - for stdout" default:"-" short:"o" type:"path"`
}

// Run is called by Kong when the scan command is executed.
func (c *ScanCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := c.config(globals)
	if err != nil {
		return err
	}
	cfg.Format = graph.Format(c.Format)
	cfg.Output = c.Output
	if err := cfg.Normalize(nil); err != nil {
		return err
	}

	diagnostics := globals.Diagnostics()
	if cfg.WritesToStdout() {
		diagnostics.UseErrorOutput()
	}
	diagnostics.Section(fmt.Sprintf("axonmeta %s: scanning %s", Version, cfg.ModuleName))

	report, err := NewPackageProcessor(cfg, diagnostics).Run(ctx)
	if err != nil {
		return err
	}

	if err := graph.WriteFile(cfg.Output, graph.FromReport(report), cfg.Format); err != nil {
		return err
	}

	printSummary(diagnostics, report)
	return nil
}

// ModulesCmd prints the discovered modules
type ModulesCmd struct {
	ScanOptions `embed:""`

	stdout io.Writer
}

// Run is called by Kong when the modules command is executed.
func (c *ModulesCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := c.config(globals)
	if err != nil {
		return err
	}
	if err := cfg.Normalize(nil); err != nil {
		return err
	}

	diagnostics := globals.Diagnostics()
	diagnostics.UseErrorOutput()

	report, err := NewPackageProcessor(cfg, diagnostics).Run(ctx)
	if err != nil {
		return err
	}

	out := c.stdout
	if out == nil {
		out = os.Stdout
	}
	WriteModules(out, report)
	return nil
}

// WriteModules prints every module of report with its scope and counts, the
// default module last
func WriteModules(w io.Writer, report *scanner.Report) {
	for _, m := range report.Graph() {
		fmt.Fprintf(w, "%s\n", moduleHeading(m))
		if m.ComponentScan != nil {
			scope := m.ComponentScan.PackageName
			if m.ComponentScan.IsCatchAll() {
				scope = "* (catch-all)"
			}
			fmt.Fprintf(w, "  scan: %s\n", scope)
		}
		if len(m.Includes) > 0 {
			fmt.Fprintf(w, "  includes: %s\n", strings.Join(m.Includes, ", "))
		}
		fmt.Fprintf(w, "  definitions: %d (own %d)\n", len(m.AllDefinitions()), len(m.Own))
		for _, def := range m.AllDefinitions() {
			fmt.Fprintf(w, "    - %s %s\n", def.Keyword, def.QualifiedName())
		}
		if len(m.ExternalDefinitions) > 0 {
			fmt.Fprintf(w, "  externals: %d\n", len(m.ExternalDefinitions))
		}
	}
}

func moduleHeading(m *models.Module) string {
	if m.IsDefault {
		return fmt.Sprintf("%s (default)", m.Name)
	}
	return fmt.Sprintf("%s (%s)", m.Name, m.PackagePath)
}

func printSummary(diagnostics *utils.DiagnosticSystem, report *scanner.Report) {
	s := report.Summary()
	diagnostics.Summary(fmt.Sprintf("Scan summary, %s", report.Round), map[string]interface{}{
		"modules":          s.Modules,
		"definitions":      s.Definitions,
		"fallbacks":        s.Fallbacks,
		"duplicates":       s.Duplicates,
		"bound properties": s.BoundProperties,
		"externals":        s.Externals,
	})
	if fallbacks := report.Fallbacks(); len(fallbacks) > 0 {
		diagnostics.Subsection("Definitions in " + report.DefaultModule.Name)
		diagnostics.Indent()
		for _, def := range fallbacks {
			diagnostics.List("%s", def.QualifiedName())
		}
		diagnostics.Unindent()
	}
	for _, ext := range report.Externals.Unowned {
		diagnostics.Verbose("external %s dropped: no module scans %s", ext.Name, ext.TargetPackage)
	}
	diagnostics.ScanComplete()
}

// VersionCmd prints the version
type VersionCmd struct{}

// Run is called by Kong when the version command is executed.
func (c *VersionCmd) Run() error {
	fmt.Println("axonmeta", Version)
	return nil
}
