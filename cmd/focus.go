package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
)

// FocusResult is the output of a successful focus.
type FocusResult struct {
	OK      bool           `yaml:"ok"               json:"ok"`
	Action  string         `yaml:"action"           json:"action"`
	Raised  bool           `yaml:"raised,omitempty" json:"raised,omitempty"`
	Element *model.Element `yaml:"element"          json:"element"`
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Raise an element's window and give the element keyboard focus",
	Long: `Raise the window containing the element at --pos (or the first element
matching the query flags) and set its AXFocused attribute. Focusing a window
only raises it.`,
	Example: `  axquery focus --app Editor -d --id body
  axquery focus --app Editor --pos 1`,
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	addLocateFlags(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	params, err := flagParams(cmd)
	if err != nil {
		return err
	}
	result, err := focusParams(params)
	if err != nil {
		return err
	}
	return printResult(cmd, result)
}

func focusParams(params map[string]any) (FocusResult, error) {
	root, el, err := locateParams(params)
	if err != nil {
		return FocusResult{}, err
	}
	raised, err := focusElement(el)
	if err != nil {
		return FocusResult{}, err
	}
	pos, _ := ax.Path(root, el)
	info := model.FromElement(el, 1, pos)
	logger.Info("focused", "element", el.Describe(), "raised", raised)
	return FocusResult{OK: true, Action: "focus", Raised: raised, Element: &info}, nil
}

// focusElement raises the element's window when it advertises AXRaise, then
// focuses the element itself unless it is the window.
func focusElement(el *ax.Element) (bool, error) {
	window := el
	if el.Role() != ax.RoleWindow {
		window = ax.Ancestor(el, ax.HasRole(ax.RoleWindow))
	}
	raised := false
	if slices.Contains(window.Actions(), ax.ActionRaise) {
		if err := window.PerformAction(ax.ActionRaise); err != nil {
			return false, err
		}
		raised = true
	}
	if el.Same(window) {
		return raised, nil
	}
	prop := ax.PropertyOf(func() *ax.Element { return el }, ax.AttrFocused, true)
	return raised, prop.Set(true)
}
