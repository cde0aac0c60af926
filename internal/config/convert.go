package config

import (
	"strconv"
	"strings"

	"github.com/danmuck/ghcbctl/internal/exchange"
	"github.com/danmuck/ghcbctl/internal/inspect"
)

// InspectServer builds the inspector service a loaded config describes.
func InspectServer(cfg InspectConfig) *inspect.Server {
	return inspect.Appear(cfg.ID, cfg.Addr, cfg.CorsOrigins)
}

// ScenarioScript builds the scripted channel answering a scenario's
// exchanges. The scenario must have passed validation; response values
// that no longer parse surface as errors here.
func ScenarioScript(sc Scenario) (*exchange.Script, error) {
	responses := make([]uint64, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		v, err := strconv.ParseUint(strings.TrimSpace(step.Response), 0, 64)
		if err != nil {
			return nil, &StepError{Index: i, Kind: step.Kind, Err: err}
		}
		responses = append(responses, v)
	}
	return exchange.NewScript(responses...), nil
}

// StepExpectsRejection reports whether a step asserts that its decode
// must fail.
func StepExpectsRejection(step ScenarioStep) bool {
	return step.Expect == ExpectRejected
}

// StepError locates a failure within a scenario.
type StepError struct {
	Index int
	Kind  string
	Err   error
}

func (e *StepError) Error() string {
	return "scenario step[" + strconv.Itoa(e.Index) + "] (" + e.Kind + "): " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}
