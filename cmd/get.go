package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/query"
)

var getCmd = &cobra.Command{
	Use:   "get <attribute>",
	Short: "Read one attribute of an element",
	Long: `Read one attribute of the element at --pos, or of the first element matching
the query flags. Short names (value, title, enabled, focused, ...) map to
their AX attribute; anything else is passed through.`,
	Example: `  axquery get value --app Editor --pos 1/2
  axquery get AXFrame --app Editor -d --title Save`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	addLocateFlags(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	name := platform.AttrName(args[0])
	root, el, err := locateFromFlags(cmd)
	if err != nil {
		return err
	}
	return printResult(cmd, query.ReadValue(root, el, name, false))
}
