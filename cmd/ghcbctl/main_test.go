package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/ghcbctl/internal/config"
	"github.com/danmuck/ghcbctl/internal/exchange"
)

func TestJudgeStepExpectationMatrix(t *testing.T) {
	decodeErr := errors.New("ghcbmsr: reserved bits set")
	cases := []struct {
		expect      string
		decodeErr   error
		wantOutcome string
	}{
		{expect: "", decodeErr: nil, wantOutcome: "pass"},
		{expect: "", decodeErr: decodeErr, wantOutcome: "fail"},
		{expect: config.ExpectRejected, decodeErr: decodeErr, wantOutcome: "pass"},
		{expect: config.ExpectRejected, decodeErr: nil, wantOutcome: "fail"},
	}
	for i, tc := range cases {
		step := config.ScenarioStep{Kind: "sev_info", Expect: tc.expect}
		outcome, _ := judgeStep(step, tc.decodeErr)
		if outcome != tc.wantOutcome {
			t.Fatalf("case %d: outcome = %q, want %q", i, outcome, tc.wantOutcome)
		}
	}
}

func TestPlayStepScriptedExchangePasses(t *testing.T) {
	script := exchange.NewScript(0x2000133000001)
	driver := exchange.NewDriver(script)
	step := config.ScenarioStep{Kind: "sev_info", Response: "0x2000133000001"}

	res := playStep(driver, 0, step)
	if res.Outcome != "pass" {
		t.Fatalf("unexpected outcome: %q (%s)", res.Outcome, res.Detail)
	}
	if res.Index != 1 {
		t.Fatalf("unexpected step index: %d", res.Index)
	}
	if res.MSR != "0x0000000000000002" {
		t.Fatalf("unexpected request msr: %q", res.MSR)
	}
	if res.Response != "0x0002000133000001" {
		t.Fatalf("unexpected response: %q", res.Response)
	}
}

func TestPlayStepScriptExhaustionFails(t *testing.T) {
	driver := exchange.NewDriver(exchange.NewScript())
	step := config.ScenarioStep{Kind: "sev_info"}

	res := playStep(driver, 0, step)
	if res.Outcome != "fail" {
		t.Fatalf("expected exhausted script to fail the step")
	}
	if !strings.Contains(res.Detail, "script exhausted") {
		t.Fatalf("unexpected detail: %q", res.Detail)
	}
}

func TestPlayStepExpectedRejectionPasses(t *testing.T) {
	script := exchange.NewScript(0x005)
	driver := exchange.NewDriver(script)
	step := config.ScenarioStep{
		Kind:     "sev_info",
		Response: "0x005",
		Expect:   config.ExpectRejected,
	}

	res := playStep(driver, 0, step)
	if res.Outcome != "pass" {
		t.Fatalf("expected rejection step to pass, got %q (%s)", res.Outcome, res.Detail)
	}
	if res.Detail == "" {
		t.Fatalf("expected the rejection text to be kept as detail")
	}
}

func TestPlayStepUnknownKindFails(t *testing.T) {
	driver := exchange.NewDriver(exchange.NewScript(0x1))
	step := config.ScenarioStep{Kind: "warp_drive"}

	res := playStep(driver, 2, step)
	if res.Outcome != "fail" {
		t.Fatalf("expected unknown kind to fail the step")
	}
	if res.Index != 3 {
		t.Fatalf("unexpected step index: %d", res.Index)
	}
	if !strings.Contains(res.Detail, "warp_drive") {
		t.Fatalf("detail must name the unknown kind: %q", res.Detail)
	}
}
