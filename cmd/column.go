package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/query"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "List the children of a role stacked in one column",
	Long: `Take the children of --scope with the given AX role, anchor on the --start-th
of them (0-based) and list those whose left edge falls within the anchor's
horizontal extent. Fewer than two children of the role never form a column.`,
	Example: `  axquery column --app Settings --scope 1/3 --role AXCheckBox
  axquery column --app Settings --scope 1/3 --role AXCheckBox --start 2 --position 1`,
	RunE: runColumn,
}

func init() {
	rootCmd.AddCommand(columnCmd)
	columnCmd.Flags().String("scope", "", "Position path of the container")
	columnCmd.Flags().String("role", "", "AX role of the column members, e.g. AXButton (required)")
	columnCmd.Flags().Int("start", 0, "0-based index of the anchor among the role matches")
	columnCmd.Flags().Int("position", 0, "Print only this 1-based position in the column")
}

func runColumn(cmd *cobra.Command, args []string) error {
	scopeStr, _ := cmd.Flags().GetString("scope")
	role, _ := cmd.Flags().GetString("role")
	start, _ := cmd.Flags().GetInt("start")
	position, _ := cmd.Flags().GetInt("position")
	if role == "" {
		return errors.New("--role is required")
	}

	path, err := platform.ParsePath(scopeStr)
	if err != nil {
		return err
	}
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	scope, err := query.ResolvePath(root, path)
	if err != nil {
		return err
	}

	desc := fmt.Sprintf("column role=%s start=%d", role, start)
	if position > 0 {
		desc += fmt.Sprintf(" position=%d", position)
		var els ax.Elements
		if el := ax.ChildInColumn(scope, role, start, position); el != nil {
			els = ax.Elements{el}
		}
		return printResult(cmd, queryResult(desc, root, els))
	}
	return printResult(cmd, queryResult(desc, root, ax.ChildrenInColumn(scope, role, start)))
}
