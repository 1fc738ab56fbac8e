package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/query"
)

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "List the siblings on the same visual line as an element",
	Long: `List the siblings of the element at --pos whose frames overlap it vertically,
the element itself included. With --next, list the line that follows it: the
line anchored by the sibling after the last member of the current line.`,
	Example: `  axquery line --app Editor --pos 1/1/2
  axquery line --app Editor --pos 1/1/2 --next`,
	RunE: runLine,
}

func init() {
	rootCmd.AddCommand(lineCmd)
	lineCmd.Flags().String("pos", "", "Position path of the element (required)")
	lineCmd.Flags().Bool("next", false, "List the next line instead")
}

func runLine(cmd *cobra.Command, args []string) error {
	posStr, _ := cmd.Flags().GetString("pos")
	next, _ := cmd.Flags().GetBool("next")
	if posStr == "" {
		return errors.New("--pos is required")
	}
	pos, err := platform.ParsePath(posStr)
	if err != nil {
		return err
	}
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	el, err := query.ResolvePath(root, pos)
	if err != nil {
		return err
	}
	if next {
		return printResult(cmd, queryResult("line after "+posStr, root, ax.ChildrenOnNextLine(el)))
	}
	return printResult(cmd, queryResult("line of "+posStr, root, ax.ChildrenOnSameLine(el)))
}
