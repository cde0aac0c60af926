package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/danmuck/ghcbctl/internal/config"
	"github.com/danmuck/ghcbctl/internal/exchange"
	"github.com/danmuck/ghcbctl/internal/ghcbmsr"
	"github.com/danmuck/ghcbctl/internal/inspect"
)

type options struct {
	mode     string
	kind     string
	raw      string
	scenario string
	config   string
	operands inspect.Operands
}

func main() {
	opts := parseFlags()
	switch opts.mode {
	case "encode":
		if err := runEncode(opts); err != nil {
			fatalf("%v", err)
		}
	case "split":
		if err := runSplit(opts); err != nil {
			fatalf("%v", err)
		}
	case "decode":
		exitCode, err := runDecode(opts)
		if err != nil {
			fatalf("%v", err)
		}
		os.Exit(exitCode)
	case "replay":
		exitCode, err := runReplay(opts)
		if err != nil {
			fatalf("%v", err)
		}
		os.Exit(exitCode)
	default:
		fatalf("unknown mode %q (supported: encode, split, decode, replay)", opts.mode)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.mode, "mode", "encode", "mode: encode | split | decode | replay")
	flag.StringVar(&opts.kind, "kind", "", "request kind (encode and decode modes)")
	flag.StringVar(&opts.raw, "raw", "", "raw 64-bit register value (split and decode modes)")
	flag.StringVar(&opts.scenario, "scenario", "", "scenario file (replay mode)")
	flag.StringVar(&opts.config, "config", "", "run settings file (replay mode)")
	flag.StringVar(&opts.operands.Function, "function", "", "cpuid function operand")
	flag.StringVar(&opts.operands.Reg, "reg", "", "cpuid register operand: eax | ebx | ecx | edx")
	flag.StringVar(&opts.operands.GFN, "gfn", "", "guest frame number operand")
	flag.StringVar(&opts.operands.Op, "op", "", "page state operand: private | shared")
	flag.StringVar(&opts.operands.VMPL, "vmpl", "", "vmpl level operand")
	flag.StringVar(&opts.operands.CodeSet, "code-set", "", "termination code set operand")
	flag.StringVar(&opts.operands.Reason, "reason", "", "termination reason operand")
	flag.Parse()
	return opts
}

func runEncode(opts options) error {
	entry, err := lookupKind(opts.kind)
	if err != nil {
		return err
	}
	req, err := entry.Build(opts.operands)
	if err != nil {
		return err
	}
	fmt.Printf("Kind:  %s\n", entry.Kind)
	fmt.Printf("MSR:   %#016x\n", req.MSR())
	fmt.Printf("Info:  %#05x (%s)\n", uint16(req.Info()), req.Info())
	fmt.Printf("Data:  %#x\n", req.Data())
	return nil
}

func runSplit(opts options) error {
	raw, err := parseRaw(opts.raw)
	if err != nil {
		return err
	}
	info, data := ghcbmsr.Split(raw)
	fmt.Printf("Raw:   %#016x\n", raw)
	fmt.Printf("Info:  %#05x (%s)\n", uint16(info), info)
	fmt.Printf("Data:  %#x\n", data)
	return nil
}

// runDecode prints the decoded response fields, or the rejection when
// the value fails its kind's validation. Rejections are tool output,
// not usage errors, so they go to stdout with a nonzero exit.
func runDecode(opts options) (int, error) {
	entry, err := lookupKind(opts.kind)
	if err != nil {
		return 1, err
	}
	raw, err := parseRaw(opts.raw)
	if err != nil {
		return 1, err
	}
	fields, err := entry.Decode(opts.operands, raw)
	if err != nil {
		if errors.Is(err, inspect.ErrBadOperand) {
			return 1, err
		}
		fmt.Printf("Kind:      %s\n", entry.Kind)
		fmt.Printf("Raw:       %#016x\n", raw)
		fmt.Printf("Rejected:  %v\n", err)
		return 1, nil
	}
	fmt.Printf("Kind:  %s\n", entry.Kind)
	fmt.Printf("Raw:   %#016x\n", raw)
	for _, name := range sortedKeys(fields) {
		fmt.Printf("  %s = %v\n", name, fields[name])
	}
	return 0, nil
}

type stepResult struct {
	Index    int    `json:"step"`
	Kind     string `json:"kind"`
	MSR      string `json:"msr,omitempty"`
	Response string `json:"response,omitempty"`
	Outcome  string `json:"outcome"`
	Detail   string `json:"detail,omitempty"`
}

type replaySummary struct {
	Name    string `json:"name"`
	Total   int    `json:"total"`
	Pass    int    `json:"pass"`
	Fail    int    `json:"fail"`
	Skipped int    `json:"skipped,omitempty"`
}

func runReplay(opts options) (int, error) {
	cfg := defaultRunConfig()
	if strings.TrimSpace(opts.config) != "" {
		loaded, err := loadRunConfig(opts.config)
		if err != nil {
			return 1, err
		}
		cfg = loaded
	}
	path, err := resolveScenarioPath(cfg, opts.scenario)
	if err != nil {
		return 1, err
	}
	sc, err := config.LoadScenario(path)
	if err != nil {
		return 1, err
	}
	strict := sc.Strict
	if cfg.StrictSet {
		strict = cfg.Strict
	}

	script, err := config.ScenarioScript(sc)
	if err != nil {
		return 1, err
	}
	driver := exchange.NewDriver(script)

	if cfg.Output == outputText {
		fmt.Printf("Scenario: %s (steps=%d strict=%v)\n\n", sc.Name, len(sc.Steps), strict)
	}

	pass := 0
	fail := 0
	played := 0
	for i, step := range sc.Steps {
		res := playStep(driver, i, step)
		played++
		if res.Outcome == "pass" {
			pass++
		} else {
			fail++
		}
		if cfg.Output == outputText {
			printStepResult(res)
		} else {
			printJSONLine(res)
		}
		if res.Outcome != "pass" && strict {
			break
		}
	}

	summary := replaySummary{
		Name:    sc.Name,
		Total:   len(sc.Steps),
		Pass:    pass,
		Fail:    fail,
		Skipped: len(sc.Steps) - played,
	}
	if cfg.Output == outputText {
		printReplaySummary(summary)
	} else {
		printJSONLine(summary)
	}
	if fail > 0 {
		return 1, nil
	}
	return 0, nil
}

// playStep runs one scenario step through the driver: build the
// request, round-trip it, then score the scoped decode against the
// step's expectation.
func playStep(driver *exchange.Driver, index int, step config.ScenarioStep) stepResult {
	res := stepResult{Index: index + 1, Kind: step.Kind}
	entry, ok := inspect.Lookup(step.Kind)
	if !ok {
		res.Outcome = "fail"
		res.Detail = fmt.Sprintf("unknown kind %q", step.Kind)
		return res
	}
	req, err := entry.Build(step.Operands)
	if err != nil {
		res.Outcome = "fail"
		res.Detail = err.Error()
		return res
	}
	res.MSR = fmt.Sprintf("%#016x", req.MSR())

	raw, err := driver.RoundTrip(req)
	if err != nil {
		res.Outcome = "fail"
		res.Detail = err.Error()
		return res
	}
	res.Response = fmt.Sprintf("%#016x", raw)

	_, decodeErr := entry.Decode(step.Operands, raw)
	res.Outcome, res.Detail = judgeStep(step, decodeErr)
	return res
}

// judgeStep scores a decode outcome against the step's expectation. A
// step expecting rejection passes only when the decode failed; the
// rejection text is kept as the detail.
func judgeStep(step config.ScenarioStep, decodeErr error) (outcome string, detail string) {
	if config.StepExpectsRejection(step) {
		if decodeErr == nil {
			return "fail", "expected rejection, response decoded cleanly"
		}
		return "pass", decodeErr.Error()
	}
	if decodeErr != nil {
		return "fail", decodeErr.Error()
	}
	return "pass", ""
}

func printStepResult(res stepResult) {
	tag := "PASS"
	if res.Outcome != "pass" {
		tag = "FAIL"
	}
	fmt.Printf("[%s] step %d %s\n", tag, res.Index, res.Kind)
	if res.MSR != "" {
		fmt.Printf("  | msr      %s\n", res.MSR)
	}
	if res.Response != "" {
		fmt.Printf("  | response %s\n", res.Response)
	}
	if res.Detail != "" {
		fmt.Printf("  | %s\n", res.Detail)
	}
}

func printReplaySummary(s replaySummary) {
	fmt.Println()
	fmt.Println("Summary")
	fmt.Printf("  Scenario: %s\n", s.Name)
	fmt.Printf("  Steps:    total=%d pass=%d fail=%d", s.Total, s.Pass, s.Fail)
	if s.Skipped > 0 {
		fmt.Printf(" skipped=%d", s.Skipped)
	}
	fmt.Println()
}

func printJSONLine(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fatalf("encode json output: %v", err)
	}
	fmt.Println(string(data))
}

func lookupKind(kind string) (inspect.Entry, error) {
	name := strings.TrimSpace(kind)
	if name == "" {
		return inspect.Entry{}, fmt.Errorf("missing -kind (known: %s)", strings.Join(kindNames(), ", "))
	}
	entry, ok := inspect.Lookup(name)
	if !ok {
		return inspect.Entry{}, fmt.Errorf("unknown kind %q (known: %s)", name, strings.Join(kindNames(), ", "))
	}
	return entry, nil
}

func kindNames() []string {
	entries := inspect.Catalog()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, string(e.Kind))
	}
	return out
}

func parseRaw(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing -raw value")
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("raw value %q is not a 64-bit value", s)
	}
	return v, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ghcbctl: "+format+"\n", args...)
	os.Exit(1)
}
