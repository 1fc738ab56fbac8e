package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/query"
)

var setCmd = &cobra.Command{
	Use:   "set <attribute> <value>",
	Short: "Write one attribute of an element",
	Long: `Write one attribute of the element at --pos, or of the first element matching
the query flags. true/false and numbers are typed; quote a value to force a
string, e.g. '"42"'.

Structural attributes (role, subrole, children, parent, frame, actions,
windows) are read-only.`,
	Example: `  axquery set value "hello world" --app Editor --pos 1/2
  axquery set focused true --app Editor -d --id body`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	addLocateFlags(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	name := platform.AttrName(args[0])
	root, el, err := locateFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := query.WriteValue(el, name, args[1]); err != nil {
		return err
	}
	logger.Info("attribute set", "attr", name, "element", el.Describe())
	return printResult(cmd, query.ReadValue(root, el, name, true))
}
