package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/query"
)

// AssertResult is the output of an assert command.
type AssertResult struct {
	OK      bool           `yaml:"ok"                json:"ok"`
	Action  string         `yaml:"action"            json:"action"`
	Pass    bool           `yaml:"pass"              json:"pass"`
	Error   string         `yaml:"error,omitempty"   json:"error,omitempty"`
	Element *model.Element `yaml:"element,omitempty" json:"element,omitempty"`
}

var assertCmd = &cobra.Command{
	Use:   "assert",
	Short: "Assert a UI condition is met",
	Long: `Check that the element at --pos, or the first element matching the query
flags, exists with the expected properties.

Returns pass/fail with structured output and exit code 0 (pass) or 1 (fail).
Optionally polls with --timeout for conditions that take time to appear.`,
	Example: `  axquery assert --app Editor -d --title Wrap --unchecked
  axquery assert --app Editor --pos 1/2 --value-contains hello
  axquery assert --app Editor -d --role sheet --gone --timeout 5s`,
	RunE: runAssert,
}

func init() {
	rootCmd.AddCommand(assertCmd)
	addLocateFlags(assertCmd)

	// Property assertions
	assertCmd.Flags().String("value", "", "Assert element value equals this string")
	assertCmd.Flags().String("value-contains", "", "Assert element value contains this substring")
	assertCmd.Flags().Bool("checked", false, "Assert element is selected/checked")
	assertCmd.Flags().Bool("unchecked", false, "Assert element is NOT selected/checked")
	assertCmd.Flags().Bool("disabled", false, "Assert element is disabled")
	assertCmd.Flags().Bool("enabled", false, "Assert element is enabled")
	assertCmd.Flags().Bool("is-focused", false, "Assert element has keyboard focus")
	assertCmd.Flags().Bool("gone", false, "Assert element does NOT exist")

	// Timing
	assertCmd.Flags().Duration("timeout", 0, "Max time to poll (0 = single check, no polling)")
	assertCmd.Flags().Duration("interval", 0, "Polling interval (default from config, 500ms)")
}

func runAssert(cmd *cobra.Command, args []string) error {
	params, err := flagParams(cmd)
	if err != nil {
		return err
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	interval, _ := cmd.Flags().GetDuration("interval")
	if interval <= 0 {
		interval = time.Duration(cfg.Wait.Interval)
	}
	checks := assertChecksFromParams(params)

	result := checkAssert(params, checks)
	if !result.Pass && timeout > 0 {
		probe := func() (ax.Elements, error) {
			result = checkAssert(params, checks)
			if !result.Pass {
				return nil, errors.New(result.Error)
			}
			// any non-empty result ends the wait
			return ax.Elements{nil}, nil
		}
		_, _ = query.Wait(cmd.Context(), probe, query.WaitOptions{Timeout: timeout, Interval: interval})
	}

	if err := printResult(cmd, result); err != nil {
		return err
	}
	if !result.Pass {
		return fmt.Errorf("assert failed: %s", result.Error)
	}
	return nil
}

type assertChecks struct {
	value         string
	hasValueCheck bool
	valueContains string
	checked       bool
	unchecked     bool
	disabled      bool
	enabled       bool
	isFocused     bool
	gone          bool
}

// assertChecksFromParams reads the assertion arguments shared by the assert
// command and assert steps of do.
func assertChecksFromParams(params map[string]any) assertChecks {
	_, hasValue := params["value"]
	return assertChecks{
		value:         query.StringParam(params, "value", ""),
		hasValueCheck: hasValue,
		valueContains: query.StringParam(params, "value-contains", ""),
		checked:       query.BoolParam(params, "checked", false),
		unchecked:     query.BoolParam(params, "unchecked", false),
		disabled:      query.BoolParam(params, "disabled", false),
		enabled:       query.BoolParam(params, "enabled", false),
		isFocused:     query.BoolParam(params, "is-focused", false),
		gone:          query.BoolParam(params, "gone", false),
	}
}

// checkAssert performs a single assertion check and returns the result.
func checkAssert(params map[string]any, checks assertChecks) AssertResult {
	root, el, err := locateParams(params)
	var elem *model.Element
	if err == nil {
		pos, _ := ax.Path(root, el)
		info := model.FromElement(el, 1, pos)
		elem = &info
	}

	if checks.gone {
		if elem == nil {
			return AssertResult{OK: true, Action: "assert", Pass: true}
		}
		return AssertResult{
			Action:  "assert",
			Error:   fmt.Sprintf("expected element to be gone but found: %s", describeElement(elem)),
			Element: elem,
		}
	}
	if err != nil {
		return AssertResult{Action: "assert", Error: err.Error()}
	}

	if err := checkPropertyAssertions(elem, checks); err != nil {
		return AssertResult{Action: "assert", Error: err.Error(), Element: elem}
	}
	return AssertResult{OK: true, Action: "assert", Pass: true, Element: elem}
}

// checkPropertyAssertions validates element properties against the checks.
// A checkbox reports its state through its value, so "1" counts as checked.
func checkPropertyAssertions(elem *model.Element, checks assertChecks) error {
	checked := elem.Selected || elem.Value == "1"
	if checks.hasValueCheck && elem.Value != checks.value {
		return fmt.Errorf("expected value %q but got %q", checks.value, elem.Value)
	}
	if checks.valueContains != "" {
		if !strings.Contains(strings.ToLower(elem.Value), strings.ToLower(checks.valueContains)) {
			return fmt.Errorf("expected value to contain %q but got %q", checks.valueContains, elem.Value)
		}
	}
	if checks.checked && !checked {
		return fmt.Errorf("expected element to be checked/selected but it is not")
	}
	if checks.unchecked && checked {
		return fmt.Errorf("expected element to be unchecked/unselected but it is checked")
	}
	if checks.disabled && (elem.Enabled == nil || *elem.Enabled) {
		return fmt.Errorf("expected element to be disabled but it is enabled")
	}
	if checks.enabled && elem.Enabled != nil && !*elem.Enabled {
		return fmt.Errorf("expected element to be enabled but it is disabled")
	}
	if checks.isFocused && !elem.Focused {
		return fmt.Errorf("expected element to be focused but it is not")
	}
	return nil
}

// describeElement returns a brief human-readable description of an element.
func describeElement(elem *model.Element) string {
	parts := []string{fmt.Sprintf("pos=%s", elem.Pos), fmt.Sprintf("role=%s", elem.Role)}
	if elem.Title != "" {
		parts = append(parts, fmt.Sprintf("title=%q", elem.Title))
	}
	if elem.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", elem.Value))
	}
	return strings.Join(parts, " ")
}
