package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/model"
	"github.com/mj1618/axquery/internal/output"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/query"
)

// toolResult serializes v to YAML for an MCP response.
func toolResult(v any) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) handleTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	t := query.TargetFromParams(params)
	scopePath, err := query.PathParam(params, "scope")
	if err != nil {
		return toolError(err)
	}
	depth := query.IntParam(params, "depth", 0)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	root, err := s.root(t)
	if err != nil {
		return toolError(err)
	}
	scope, err := query.ResolvePath(root, scopePath)
	if err != nil {
		return toolError(err)
	}
	elements := model.Capture(scope, depth)
	if query.BoolParam(params, "flat", false) {
		return toolResult(output.TreeFlatResult{
			Target:   t.String(),
			Scope:    platform.FormatPath(scopePath),
			TS:       time.Now().Unix(),
			Elements: model.FlattenElements(elements),
		})
	}
	return toolResult(output.TreeResult{
		Target:   t.String(),
		Scope:    platform.FormatPath(scopePath),
		TS:       time.Now().Unix(),
		Elements: elements,
	})
}

func (s *Server) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	spec, err := query.FromParams(params)
	if err != nil {
		return toolError(err)
	}
	t := query.TargetFromParams(params)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	root, err := s.root(t)
	if err != nil {
		return toolError(err)
	}
	_, els, err := spec.Run(root)
	if err != nil {
		return toolError(err)
	}
	return toolResult(queryResult(t, spec.String(), root, els))
}

func (s *Server) handleLine(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	t := query.TargetFromParams(params)
	pos, err := query.PathParam(params, "pos")
	if err != nil {
		return toolError(err)
	}
	if pos == nil {
		return toolError(errors.New("pos is required"))
	}
	next := query.BoolParam(params, "next", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	root, err := s.root(t)
	if err != nil {
		return toolError(err)
	}
	el, err := query.ResolvePath(root, pos)
	if err != nil {
		return toolError(err)
	}
	els := ax.ChildrenOnSameLine(el)
	desc := "line of " + platform.FormatPath(pos)
	if next {
		els = ax.ChildrenOnNextLine(el)
		desc = "line after " + platform.FormatPath(pos)
	}
	return toolResult(queryResult(t, desc, root, els))
}

func (s *Server) handleColumn(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	t := query.TargetFromParams(params)
	scopePath, err := query.PathParam(params, "scope")
	if err != nil {
		return toolError(err)
	}
	role := query.StringParam(params, "role", "")
	if role == "" {
		return toolError(errors.New("role is required"))
	}
	start := query.IntParam(params, "start", 0)
	position := query.IntParam(params, "position", 0)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	root, err := s.root(t)
	if err != nil {
		return toolError(err)
	}
	scope, err := query.ResolvePath(root, scopePath)
	if err != nil {
		return toolError(err)
	}
	desc := fmt.Sprintf("column role=%s start=%d", role, start)
	var els ax.Elements
	if position > 0 {
		desc += fmt.Sprintf(" position=%d", position)
		if el := ax.ChildInColumn(scope, role, start, position); el != nil {
			els = ax.Elements{el}
		}
	} else {
		els = ax.ChildrenInColumn(scope, role, start)
	}
	return toolResult(queryResult(t, desc, root, els))
}

// locate resolves the element addressed by pos or by the query arguments.
// The caller must hold providerMu.
func (s *Server) locate(params map[string]any) (*ax.Element, *ax.Element, error) {
	spec, err := query.FromParams(params)
	if err != nil {
		return nil, nil, err
	}
	pos, err := query.PathParam(params, "pos")
	if err != nil {
		return nil, nil, err
	}
	root, err := s.root(query.TargetFromParams(params))
	if err != nil {
		return nil, nil, err
	}
	el, err := query.Locate(root, pos, spec)
	return root, el, err
}

func (s *Server) handleGet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := platform.AttrName(query.StringParam(params, "name", ""))
	if name == "" {
		return toolError(errors.New("name is required"))
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	root, el, err := s.locate(params)
	if err != nil {
		return toolError(err)
	}
	return toolResult(query.ReadValue(root, el, name, false))
}

func (s *Server) handleSet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := platform.AttrName(query.StringParam(params, "name", ""))
	if name == "" {
		return toolError(errors.New("name is required"))
	}
	raw, ok := params["value"]
	if !ok {
		return toolError(errors.New("value is required"))
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	root, el, err := s.locate(params)
	if err != nil {
		return toolError(err)
	}
	if err := query.WriteValue(el, name, raw); err != nil {
		return toolError(err)
	}
	s.log.Debug("set", "attr", name, "element", el.Describe())
	return toolResult(query.ReadValue(root, el, name, true))
}

func (s *Server) handleAction(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	action := platform.ActionName(query.StringParam(params, "action", "press"))

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	root, el, err := s.locate(params)
	if err != nil {
		return toolError(err)
	}
	pos, _ := ax.Path(root, el)
	info := model.FromElement(el, 1, pos)
	if err := el.PerformAction(action); err != nil {
		return toolError(err)
	}
	s.log.Debug("action", "action", action, "element", el.Describe())
	return toolResult(output.ActionResult{OK: true, Action: action, Element: info})
}

func (s *Server) handleWait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	spec, err := query.FromParams(params)
	if err != nil {
		return toolError(err)
	}
	t := query.TargetFromParams(params)
	opts := query.WaitOptions{
		Timeout:  time.Duration(query.IntParam(params, "timeout", 10000)) * time.Millisecond,
		Interval: time.Duration(query.IntParam(params, "interval", 500)) * time.Millisecond,
		Gone:     query.BoolParam(params, "gone", false),
	}

	var root *ax.Element
	// the lock is held per poll so other tools can run while this one waits
	probe := func() (ax.Elements, error) {
		s.providerMu.Lock()
		defer s.providerMu.Unlock()
		r, err := s.root(t)
		if err != nil {
			return nil, err
		}
		root = r
		_, els, err := spec.Run(r)
		return els, err
	}

	out, err := query.Wait(ctx, probe, opts)
	result := output.WaitResult{
		OK:      err == nil,
		Query:   spec.String(),
		Gone:    opts.Gone,
		Elapsed: fmt.Sprintf("%.1fs", out.Elapsed.Seconds()),
		Polls:   out.Polls,
	}
	if err != nil {
		result.TimedOut = errors.Is(err, query.ErrTimeout)
		b, _ := yaml.Marshal(result)
		return mcp.NewToolResultError(string(b)), nil
	}
	if len(out.Elements) > 0 {
		s.providerMu.Lock()
		els := model.Results(root, out.Elements[:1])
		s.providerMu.Unlock()
		result.Element = &els[0]
	}
	return toolResult(result)
}

func queryResult(t platform.Target, desc string, root *ax.Element, els ax.Elements) output.QueryResult {
	return output.QueryResult{
		Target:   t.String(),
		Query:    desc,
		Count:    len(els),
		Elements: model.Results(root, els),
	}
}
