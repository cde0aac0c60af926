package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ghcbctl run settings. StrictSet records whether the file defined
// strict at all, so an absent key falls through to the scenario's own
// flag.
type runConfig struct {
	Output      string
	ScenarioDir string
	Strict      bool
	StrictSet   bool
}

// ghcbctl config.toml key mapping to run settings.
type fileConfig struct {
	Output      string `toml:"output"`
	ScenarioDir string `toml:"scenario_dir"`
	Strict      bool   `toml:"strict"`
}

const (
	outputText = "text"
	outputJSON = "json"
)

func defaultRunConfig() runConfig {
	return runConfig{Output: outputText}
}

// ghcbctl loader for TOML run settings with default overlay.
func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load ghcbctl config: %w", err)
	}

	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("scenario_dir") {
		cfg.ScenarioDir = strings.TrimSpace(raw.ScenarioDir)
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
		cfg.StrictSet = true
	}

	if cfg.Output != outputText && cfg.Output != outputJSON {
		return runConfig{}, fmt.Errorf(
			"load ghcbctl config: unsupported output %q (expected %s or %s)",
			cfg.Output, outputText, outputJSON,
		)
	}
	return cfg, nil
}

// resolveScenarioPath applies the configured scenario dir to relative
// scenario paths.
func resolveScenarioPath(cfg runConfig, scenario string) (string, error) {
	path := strings.TrimSpace(scenario)
	if path == "" {
		return "", fmt.Errorf("missing -scenario path")
	}
	if cfg.ScenarioDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ScenarioDir, path)
	}
	return path, nil
}
