package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/ghcbctl/internal/inspect"
)

type InspectConfig struct {
	ID          string   `toml:"id"`
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins"`
}

// Scenario is a scripted sequence of MSR exchanges: each step builds a
// request from its kind and operands and answers the exit with the
// scripted response value.
type Scenario struct {
	Name   string         `toml:"name"`
	Strict bool           `toml:"strict"`
	Steps  []ScenarioStep `toml:"steps"`
}

type ScenarioStep struct {
	Kind     string           `toml:"kind"`
	Operands inspect.Operands `toml:"operands"`
	// Response is the raw register value the scripted hypervisor
	// answers with, as a decimal or 0x-prefixed string.
	Response string `toml:"response"`
	// Expect is "ok" or "rejected"; empty means "ok". Steps expecting
	// rejection let a scenario pin down hostile-response handling.
	Expect string `toml:"expect"`
}

const (
	ExpectOK       = "ok"
	ExpectRejected = "rejected"
)

func LoadInspectConfig(path string) (InspectConfig, error) {
	var cfg InspectConfig
	if err := loadToml(path, &cfg); err != nil {
		return InspectConfig{}, err
	}
	if cfg.ID == "" {
		cfg.ID = "inspectctl"
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9102"
	}
	if err := ValidateInspectConfig(cfg); err != nil {
		return InspectConfig{}, err
	}
	return cfg, nil
}

func LoadScenario(path string) (Scenario, error) {
	var sc Scenario
	if err := loadToml(path, &sc); err != nil {
		return Scenario{}, err
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(strings.TrimSpace(path), ".toml")
	}
	if err := ValidateScenario(sc); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateInspectConfig(cfg InspectConfig) error {
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("inspect config missing id")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("inspect config missing addr")
	}
	return nil
}

func ValidateScenario(sc Scenario) error {
	if strings.TrimSpace(sc.Name) == "" {
		return fmt.Errorf("scenario missing name")
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("scenario has no steps")
	}
	for i, step := range sc.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("step[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func validateStep(step ScenarioStep) error {
	if _, ok := inspect.Lookup(step.Kind); !ok {
		return fmt.Errorf("unknown kind %q", step.Kind)
	}
	if strings.TrimSpace(step.Response) == "" {
		return fmt.Errorf("response is required")
	}
	if _, err := strconv.ParseUint(strings.TrimSpace(step.Response), 0, 64); err != nil {
		return fmt.Errorf("response %q is not a 64-bit value", step.Response)
	}
	switch step.Expect {
	case "", ExpectOK, ExpectRejected:
		return nil
	}
	return fmt.Errorf("expect must be %q or %q", ExpectOK, ExpectRejected)
}
