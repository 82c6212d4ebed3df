package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// cliConfig is the layered tool configuration. It has nothing to do with
// the language manifest (sable.toml); it only shapes the CLI behavior.
type cliConfig struct {
	Color          string `koanf:"color"`
	UI             string `koanf:"ui"`
	Jobs           int    `koanf:"jobs"`
	MaxDiagnostics int    `koanf:"max_diagnostics"`
	Timings        bool   `koanf:"timings"`
	NoCache        bool   `koanf:"no_cache"`
}

const configFileName = "sable.yaml"

// loadConfig layers the tool configuration. Precedence, highest first:
// flags > SABLE_ env vars > sable.yaml > defaults.
func loadConfig(flags *pflag.FlagSet) (cliConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"color":           "auto",
		"ui":              "auto",
		"jobs":            0,
		"max_diagnostics": 100,
		"timings":         false,
		"no_cache":        false,
	}, "."), nil); err != nil {
		return cliConfig{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	cfgFile := ""
	if flags != nil {
		cfgFile, _ = flags.GetString("config")
	}
	if cfgFile == "" {
		if _, err := os.Stat(configFileName); err == nil {
			cfgFile = configFileName
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return cliConfig{}, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// SABLE_MAX_DIAGNOSTICS -> max_diagnostics
	if err := k.Load(env.Provider("SABLE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SABLE_"))
	}), nil); err != nil {
		return cliConfig{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return cliConfig{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg cliConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return cliConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// useColor resolves the color mode against the output terminal.
func useColor(mode string, f *os.File) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		return isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
