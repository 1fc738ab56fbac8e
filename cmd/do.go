package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/query"
)

// DoResult is the output of a batch do command.
type DoResult struct {
	OK        bool         `yaml:"ok"              json:"ok"`
	Action    string       `yaml:"action"          json:"action"`
	Steps     int          `yaml:"steps"           json:"steps"`
	Completed int          `yaml:"completed"       json:"completed"`
	Error     string       `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []StepResult `yaml:"results"         json:"results"`
}

// StepResult is the output for a single step within a batch.
type StepResult struct {
	Step    int            `yaml:"step"              json:"step"`
	OK      bool           `yaml:"ok"                json:"ok"`
	Action  string         `yaml:"action"            json:"action"`
	Error   string         `yaml:"error,omitempty"   json:"error,omitempty"`
	Count   *int           `yaml:"count,omitempty"   json:"count,omitempty"`
	Element *model.Element `yaml:"element,omitempty" json:"element,omitempty"`
	Value   any            `yaml:"value,omitempty"   json:"value,omitempty"`
	Elapsed string         `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
}

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Execute multiple steps in a batch",
	Long: `Execute a sequence of steps from a YAML list on stdin.

Each step is a step name with its arguments as a map. Arguments are the ones
the MCP tools take: pos, scope, role, title, contains, id, attr, sort, nth,
descendants, app, pid and so on. Steps execute sequentially against one
session, and by default execution stops on the first error.

Supported step types: find, get, set, action, focus, assert, wait, sleep`,
	Example: `  axquery do --app Editor <<'EOF'
  - set: { id: body, descendants: true, name: value, value: "Dear team," }
  - action: { title: Wrap, descendants: true }
  - assert: { title: Wrap, descendants: true, checked: true }
  - wait: { title: Saved, descendants: true, timeout: 5000 }
  EOF`,
	Args: cobra.NoArgs,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
}

func runDo(cmd *cobra.Command, args []string) error {
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	steps, err := parseSteps(data)
	if err != nil {
		return err
	}

	result := runSteps(cmd.Context(), steps, stopOnError)
	if err := printResult(cmd, result); err != nil {
		return err
	}
	if !result.OK {
		return errors.New(result.Error)
	}
	return nil
}

// step is one parsed entry of a batch.
type step struct {
	action string
	params map[string]any
}

func parseSteps(data []byte) ([]step, error) {
	var raw []map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no steps provided: pipe a YAML list of steps on stdin")
	}
	steps := make([]step, 0, len(raw))
	for i, entry := range raw {
		if len(entry) != 1 {
			return nil, fmt.Errorf("step %d: expected exactly one step key, got %d", i+1, len(entry))
		}
		for action, params := range entry {
			if params == nil {
				params = map[string]any{}
			}
			steps = append(steps, step{action: action, params: params})
		}
	}
	return steps, nil
}

func runSteps(ctx context.Context, steps []step, stopOnError bool) DoResult {
	out := DoResult{OK: true, Action: "do", Steps: len(steps), Results: make([]StepResult, 0, len(steps))}
	for i, s := range steps {
		res, err := executeStep(ctx, s.action, s.params)
		res.Step = i + 1
		res.Action = s.action
		if err != nil {
			res.Error = err.Error()
			out.Results = append(out.Results, res)
			out.OK = false
			if out.Error == "" {
				out.Error = fmt.Sprintf("step %d: %s", res.Step, res.Error)
			}
			logger.Warn("step failed", "step", res.Step, "action", s.action, "err", err)
			if stopOnError {
				break
			}
			continue
		}
		res.OK = true
		out.Completed++
		out.Results = append(out.Results, res)
	}
	return out
}

func executeStep(ctx context.Context, action string, params map[string]any) (StepResult, error) {
	switch action {
	case "find":
		return executeFind(params)
	case "get":
		return executeGet(params)
	case "set":
		return executeSet(params)
	case "action":
		return executeAction(params)
	case "focus":
		res, err := focusParams(params)
		return StepResult{Element: res.Element}, err
	case "assert":
		res := checkAssert(params, assertChecksFromParams(params))
		if !res.Pass {
			return StepResult{Element: res.Element}, errors.New(res.Error)
		}
		return StepResult{Element: res.Element}, nil
	case "wait":
		return executeWait(ctx, params)
	case "sleep":
		return executeSleep(ctx, params)
	default:
		return StepResult{}, fmt.Errorf("unknown step type %q: supported: find, get, set, action, focus, assert, wait, sleep", action)
	}
}

func executeFind(params map[string]any) (StepResult, error) {
	spec, err := query.FromParams(params)
	if err != nil {
		return StepResult{}, err
	}
	root, err := rootFor(params)
	if err != nil {
		return StepResult{}, err
	}
	_, els, err := spec.Run(root)
	if err != nil {
		return StepResult{}, err
	}
	count := len(els)
	res := StepResult{Count: &count}
	if count > 0 {
		first := model.Results(root, els[:1])[0]
		res.Element = &first
	}
	return res, nil
}

func executeGet(params map[string]any) (StepResult, error) {
	name := platform.AttrName(query.StringParam(params, "name", ""))
	if name == "" {
		return StepResult{}, errors.New("name is required")
	}
	root, el, err := locateParams(params)
	if err != nil {
		return StepResult{}, err
	}
	v := query.ReadValue(root, el, name, false)
	return StepResult{Element: elementInfo(root, el), Value: v.Value}, nil
}

func executeSet(params map[string]any) (StepResult, error) {
	name := platform.AttrName(query.StringParam(params, "name", ""))
	if name == "" {
		return StepResult{}, errors.New("name is required")
	}
	value, ok := params["value"]
	if !ok {
		return StepResult{}, errors.New("value is required")
	}
	root, el, err := locateParams(params)
	if err != nil {
		return StepResult{}, err
	}
	if err := query.WriteValue(el, name, value); err != nil {
		return StepResult{}, err
	}
	return StepResult{Element: elementInfo(root, el), Value: query.ReadValue(root, el, name, true).Value}, nil
}

func executeAction(params map[string]any) (StepResult, error) {
	action := platform.ActionName(query.StringParam(params, "action", "press"))
	root, el, err := locateParams(params)
	if err != nil {
		return StepResult{}, err
	}
	info := elementInfo(root, el)
	if err := el.PerformAction(action); err != nil {
		return StepResult{Element: info}, err
	}
	return StepResult{Element: info, Value: action}, nil
}

func executeWait(ctx context.Context, params map[string]any) (StepResult, error) {
	spec, err := query.FromParams(params)
	if err != nil {
		return StepResult{}, err
	}
	timeoutMs := query.IntParam(params, "timeout", int(time.Duration(cfg.Wait.Timeout).Milliseconds()))
	intervalMs := query.IntParam(params, "interval", int(time.Duration(cfg.Wait.Interval).Milliseconds()))
	opts := query.WaitOptions{
		Timeout:  time.Duration(timeoutMs) * time.Millisecond,
		Interval: time.Duration(intervalMs) * time.Millisecond,
		Gone:     query.BoolParam(params, "gone", false),
	}
	var root *ax.Element
	out, err := query.Wait(ctx, func() (ax.Elements, error) {
		r, err := rootFor(params)
		if err != nil {
			return nil, err
		}
		root = r
		_, els, err := spec.Run(r)
		return els, err
	}, opts)
	res := StepResult{Elapsed: fmt.Sprintf("%.1fs", out.Elapsed.Seconds())}
	if err != nil {
		return res, err
	}
	if len(out.Elements) > 0 {
		res.Element = elementInfo(root, out.Elements[0])
	}
	return res, nil
}

func executeSleep(ctx context.Context, params map[string]any) (StepResult, error) {
	ms := query.IntParam(params, "ms", 0)
	if ms <= 0 {
		return StepResult{}, errors.New("ms must be positive")
	}
	start := time.Now()
	select {
	case <-ctx.Done():
		return StepResult{}, ctx.Err()
	case <-time.After(time.Duration(ms) * time.Millisecond):
	}
	return StepResult{Elapsed: fmt.Sprintf("%.1fs", time.Since(start).Seconds())}, nil
}

func elementInfo(root, el *ax.Element) *model.Element {
	pos, _ := ax.Path(root, el)
	info := model.FromElement(el, 1, pos)
	return &info
}
