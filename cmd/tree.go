package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/output"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/query"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the accessibility tree of an application",
	Long: `Read the accessibility tree under the target application (or --scope) and
print it as nested elements. Each element carries its position path (pos),
relative to the scope, and a sequential ID.

Filters apply after capture: non-matching elements are dropped and their
matching descendants promoted.`,
	Example: `  axquery tree --app Notes --depth 3
  axquery tree --app Notes --scope 1/2 --flat
  axquery tree --tree testdata/editor.yaml --roles interactive`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().String("scope", "", "Position path of the subtree root")
	treeCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = unlimited)")
	treeCmd.Flags().Bool("flat", false, "Print a flat list with path breadcrumbs")
	treeCmd.Flags().String("roles", "", "Comma-separated compact roles or meta-roles to keep")
	treeCmd.Flags().String("text", "", "Keep elements whose title, value, description or identifier contains this text")
	treeCmd.Flags().String("bbox", "", "Keep elements intersecting x,y,w,h")
	treeCmd.Flags().Bool("prune", false, "Drop anonymous groups, promoting their children")
}

func runTree(cmd *cobra.Command, args []string) error {
	scopeStr, _ := cmd.Flags().GetString("scope")
	depth, _ := cmd.Flags().GetInt("depth")
	flat, _ := cmd.Flags().GetBool("flat")
	rolesStr, _ := cmd.Flags().GetString("roles")
	text, _ := cmd.Flags().GetString("text")
	bboxStr, _ := cmd.Flags().GetString("bbox")
	prune, _ := cmd.Flags().GetBool("prune")

	var bbox *[4]int
	if bboxStr != "" {
		f, err := platform.ParseFrame(bboxStr)
		if err != nil {
			return err
		}
		b := f.Bounds()
		bbox = &b
	}

	scopePath, elements, err := captureScope(scopeStr, depth)
	if err != nil {
		return err
	}
	elements = model.FilterElements(elements, splitList(rolesStr), bbox)
	elements = model.FilterByText(elements, text)

	if flat {
		flatEls := model.FlattenElements(elements)
		if prune {
			flatEls = model.PruneEmptyGroupsFlat(flatEls)
		}
		return printResult(cmd, output.TreeFlatResult{
			Target:   currentTarget().String(),
			Scope:    platform.FormatPath(scopePath),
			TS:       time.Now().Unix(),
			Elements: flatEls,
		})
	}
	if prune {
		elements = model.PruneEmptyGroups(elements)
	}
	return printResult(cmd, output.TreeResult{
		Target:   currentTarget().String(),
		Scope:    platform.FormatPath(scopePath),
		TS:       time.Now().Unix(),
		Elements: elements,
	})
}

// captureScope resolves the target root, descends to scope and captures the
// subtree below it.
func captureScope(scope string, depth int) ([]int, []model.Element, error) {
	path, err := platform.ParsePath(scope)
	if err != nil {
		return nil, nil, err
	}
	root, err := resolveRoot()
	if err != nil {
		return nil, nil, err
	}
	el, err := query.ResolvePath(root, path)
	if err != nil {
		return nil, nil, err
	}
	return path, model.Capture(el, depth), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
