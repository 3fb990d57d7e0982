package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/toyz/axonmeta/internal/cli"
)

func main() {
	userCfg := cli.FindUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := cli.ConfigCandidatePaths(userCfg, "")

	var root cli.CLI
	ctx := kong.Parse(&root,
		kong.Name("axonmeta"),
		kong.Description("Scan annotated Go declarations into a dependency injection module graph"),
		kong.UsageOnError(),
		// Flags and env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx.Bind(&root.Globals)
	ctx.BindTo(runCtx, (*context.Context)(nil))

	if err := ctx.Run(); err != nil {
		cli.NewDiagnosticReporter(root.Verbose).ReportError(err)
		stop()
		os.Exit(1)
	}
}
