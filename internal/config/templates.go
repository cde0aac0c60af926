package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "inspect":
		return inspectTemplate, nil
	case "scenario":
		return scenarioTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const inspectTemplate = `id = "inspectctl"
addr = ":9102"
cors_origins = ["http://localhost:3000"]
`

const scenarioTemplate = `name = "boot-negotiation"
strict = true

[[steps]]
kind = "sev_info"
response = "0x2000133000001"

[[steps]]
kind = "cpuid"
response = "0x200000005"

[steps.operands]
function = "0x8000001f"
reg = "eax"

[[steps]]
kind = "register_ghcb"
response = "0x7f000013"

[steps.operands]
gfn = "0x7f000"

[[steps]]
kind = "page_state"
response = "0x15"

[steps.operands]
gfn = "0x7f000"
op = "private"

[[steps]]
kind = "feature_support"
response = "0xb081"

[[steps]]
kind = "sev_info"
response = "0x2000133001001"
expect = "rejected"
`
