package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/output"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find elements by role, title, attributes and position",
	Long: `Find the children of a scope (or, with --descendants, every element below it)
matching all of the given filters. Results keep child order unless --sort
names a geometric ordering; descendant results are breadth-first.

Geometric filters (--above, --below, --left-of, --right-of) take the position
path of a reference element and compare frames strictly.`,
	Example: `  axquery find --app Editor --scope 1/1 --role btn --sort ltr
  axquery find --app Editor -d --title Save
  axquery find --app Editor -d --role chk --attr value=0
  axquery find --app Editor -d --below 1/1/1 --nth 1`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	addQueryFlags(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	_, els, err := spec.Run(root)
	if err != nil {
		return err
	}
	logger.Debug("find", "query", spec.String(), "matches", len(els))
	return printResult(cmd, queryResult(spec.String(), root, els))
}

func queryResult(desc string, root *ax.Element, els ax.Elements) output.QueryResult {
	return output.QueryResult{
		Target:   currentTarget().String(),
		Query:    desc,
		Count:    len(els),
		Elements: model.Results(root, els),
	}
}
