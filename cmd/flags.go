package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/query"
)

// addQueryFlags registers the flags that make up a query.Spec. Flag names
// match the MCP tool arguments so both surfaces share query.FromParams.
func addQueryFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("scope", "", "Position path of the element to query under, e.g. 1/2 (default: application)")
	f.String("role", "", "Comma-separated roles: AXButton, compact codes (btn, input) or meta-roles (interactive, text)")
	f.String("title", "", "Exact title")
	f.String("contains", "", "Case-insensitive title substring")
	f.String("id", "", "AXIdentifier")
	f.String("attr", "", "Comma-separated name=value attribute filters, e.g. value=0,enabled=true")
	f.String("above", "", "Only elements above the element at this path")
	f.String("below", "", "Only elements below the element at this path")
	f.String("left-of", "", "Only elements left of the element at this path")
	f.String("right-of", "", "Only elements right of the element at this path")
	f.String("sort", "", "reading, reverse-reading, ltr, rtl, ttb, btt (default: child order)")
	f.Int("nth", 0, "Return only the nth match (1-based)")
	f.BoolP("descendants", "d", false, "Search all descendants instead of direct children")
	f.Int("depth", 0, "Max descendant depth (0 = unlimited)")
	f.Int("limit", 0, "Max results (0 = all)")
}

// addLocateFlags registers the query flags plus --pos, for commands that
// operate on a single element.
func addLocateFlags(cmd *cobra.Command) {
	cmd.Flags().String("pos", "", "Position path of the element; when omitted the first query match is used")
	addQueryFlags(cmd)
}

// flagParams collects the explicitly set flags of cmd itself into a
// tool-call style argument map. Flags inherited from parents are skipped.
func flagParams(cmd *cobra.Command) (map[string]any, error) {
	params := map[string]any{}
	inherited := cmd.InheritedFlags()
	var err error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if err != nil || inherited.Lookup(f.Name) != nil {
			return
		}
		switch f.Value.Type() {
		case "int":
			var n int
			n, err = strconv.Atoi(f.Value.String())
			params[f.Name] = n
		case "bool":
			var b bool
			b, err = strconv.ParseBool(f.Value.String())
			params[f.Name] = b
		default:
			params[f.Name] = f.Value.String()
		}
		if err != nil {
			err = fmt.Errorf("--%s: %w", f.Name, err)
		}
	})
	return params, err
}

func specFromFlags(cmd *cobra.Command) (query.Spec, error) {
	params, err := flagParams(cmd)
	if err != nil {
		return query.Spec{}, err
	}
	return query.FromParams(params)
}

// locateFromFlags resolves the element named by --pos or the query flags.
func locateFromFlags(cmd *cobra.Command) (*ax.Element, *ax.Element, error) {
	params, err := flagParams(cmd)
	if err != nil {
		return nil, nil, err
	}
	return locateParams(params)
}

// locateParams resolves the element named by the pos argument, or the first
// match of the query arguments.
func locateParams(params map[string]any) (*ax.Element, *ax.Element, error) {
	spec, err := query.FromParams(params)
	if err != nil {
		return nil, nil, err
	}
	pos, err := query.PathParam(params, "pos")
	if err != nil {
		return nil, nil, err
	}
	root, err := rootFor(params)
	if err != nil {
		return nil, nil, err
	}
	el, err := query.Locate(root, pos, spec)
	return root, el, err
}

// rootFor resolves the application root, letting app and pid arguments
// override the configured target.
func rootFor(params map[string]any) (*ax.Element, error) {
	t := query.TargetFromParams(params)
	if t.IsZero() {
		return resolveRoot()
	}
	s, err := currentSession()
	if err != nil {
		return nil, err
	}
	return s.Root(t)
}
