package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigBaseName is the base name of configuration files looked up in the working directory
const ConfigBaseName = "axonmeta"

// ConfigEnv names the environment variable holding an explicit config path
const ConfigEnv = "AXONMETA_CONFIG"

// ConfigCandidatePaths builds candidate paths for config files per format.
// If userPath is provided, it is prioritized and routed to the matching loader by extension.
func ConfigCandidatePaths(userPath, wd string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	if wd == "" {
		wd, _ = os.Getwd()
	}
	add(&jsonPaths, filepath.Join(wd, ConfigBaseName+".json"))
	add(&yamlPaths, filepath.Join(wd, ConfigBaseName+".yaml"))
	add(&yamlPaths, filepath.Join(wd, ConfigBaseName+".yml"))
	add(&tomlPaths, filepath.Join(wd, ConfigBaseName+".toml"))

	return
}

// FindUserConfig returns the --config value from args, falling back to AXONMETA_CONFIG
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(ConfigEnv)
}
