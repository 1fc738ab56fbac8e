package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/output"
	"github.com/mj1618/axquery/internal/platform"
)

var actionCmd = &cobra.Command{
	Use:   "action [name]",
	Short: "Perform an accessibility action on an element",
	Long: `Perform an accessibility action on the element at --pos, or on the first
element matching the query flags.

Actions are the same as shown in the 'a' field of tree output:
  press      - Press/activate the element (default)
  cancel     - Cancel the current operation
  pick       - Pick/select (dropdowns, menus)
  increment  - Increase value (sliders, steppers)
  decrement  - Decrease value (sliders, steppers)
  confirm    - Confirm a dialog or selection
  showmenu   - Show context menu for the element
  raise      - Bring element/window to front

The action is called through the accessibility API, so it works on
off-screen or occluded elements. Only advertised actions succeed.`,
	Example: `  axquery action --app Editor -d --title Save
  axquery action raise --app Editor --pos 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAction,
}

func init() {
	rootCmd.AddCommand(actionCmd)
	addLocateFlags(actionCmd)
}

func runAction(cmd *cobra.Command, args []string) error {
	name := "press"
	if len(args) == 1 {
		name = args[0]
	}
	action := platform.ActionName(name)

	root, el, err := locateFromFlags(cmd)
	if err != nil {
		return err
	}
	pos, _ := ax.Path(root, el)
	info := model.FromElement(el, 1, pos)
	if err := el.PerformAction(action); err != nil {
		return err
	}
	logger.Info("action performed", "action", action, "element", el.Describe())
	return printResult(cmd, output.ActionResult{OK: true, Action: action, Element: info})
}
