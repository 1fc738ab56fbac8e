// Package server exposes the query engine as Model Context Protocol tools.
package server

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/axquery/internal/ax"
	"github.com/mj1618/axquery/internal/logging"
	"github.com/mj1618/axquery/internal/platform"
	"github.com/mj1618/axquery/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server with the platform session and root cache.
type Server struct {
	session platform.Session
	log     *slog.Logger

	// providerMu serializes every tool call: native providers are not safe
	// for concurrent use, and roots is a plain map.
	providerMu sync.Mutex
	roots      ax.Slots

	mcp *mcpserver.MCPServer
}

// New creates a server with every axquery tool registered.
func New(session platform.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		session: session,
		log:     logger,
		roots:   ax.Slots{},
	}
	s.mcp = mcpserver.NewMCPServer("axquery", version.Version)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	s.log.Info("serving MCP", "transport", cfg.Transport, "port", cfg.Port)
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "http", "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or http)", cfg.Transport)
	}
}

// root resolves the application element for t. Named targets are memoized
// and revalidated on every read; the frontmost application can change
// between calls, so the zero target is always resolved afresh.
// The caller must hold providerMu.
func (s *Server) root(t platform.Target) (*ax.Element, error) {
	if t.IsZero() {
		return s.session.Root(t)
	}
	var resolveErr error
	resolved := false
	el, ok := ax.Cached(s.roots, t, func() *ax.Element {
		resolved = true
		el, err := s.session.Root(t)
		resolveErr = err
		return el
	}, func(el *ax.Element) bool {
		return t.App == "" || strings.EqualFold(el.Title(), t.App)
	})
	s.log.Debug("root", "target", t.String(), "cached", !resolved, "ok", ok)
	if !ok {
		if resolveErr != nil {
			return nil, resolveErr
		}
		return nil, fmt.Errorf("%w: %s", platform.ErrNoTarget, t)
	}
	return el, nil
}

func (s *Server) registerTools() {
	target := []mcp.ToolOption{
		mcp.WithString("app", mcp.Description("Application name (default: frontmost)")),
		mcp.WithNumber("pid", mcp.Description("Process ID")),
	}
	queryOpts := []mcp.ToolOption{
		mcp.WithString("scope", mcp.Description("Position path of the element to query under, e.g. '1/2' (default: application)")),
		mcp.WithString("role", mcp.Description("Comma-separated roles: AXButton, compact codes (btn, input) or meta-roles (interactive, text)")),
		mcp.WithString("title", mcp.Description("Exact title")),
		mcp.WithString("contains", mcp.Description("Case-insensitive title substring")),
		mcp.WithString("id", mcp.Description("AXIdentifier")),
		mcp.WithString("attr", mcp.Description("Comma-separated name=value attribute filters")),
		mcp.WithString("above", mcp.Description("Only elements above the element at this path")),
		mcp.WithString("below", mcp.Description("Only elements below the element at this path")),
		mcp.WithString("left-of", mcp.Description("Only elements left of the element at this path")),
		mcp.WithString("right-of", mcp.Description("Only elements right of the element at this path")),
		mcp.WithString("sort", mcp.Description("reading (default), reverse-reading, ltr, rtl, ttb, btt")),
		mcp.WithNumber("nth", mcp.Description("Return only the nth match (1-based)")),
		mcp.WithBoolean("descendants", mcp.Description("Search all descendants instead of direct children")),
		mcp.WithNumber("depth", mcp.Description("Max descendant depth (0 = unlimited)")),
		mcp.WithNumber("limit", mcp.Description("Max results")),
	}
	locate := append([]mcp.ToolOption{
		mcp.WithString("pos", mcp.Description("Position path of the element; when omitted the first query match is used")),
	}, queryOpts...)

	s.mcp.AddTool(mcp.NewTool("tree", with(target,
		mcp.WithDescription("Read the accessibility tree under an application or scope. Elements carry position paths usable as pos/scope in other tools."),
		mcp.WithString("scope", mcp.Description("Position path of the subtree root")),
		mcp.WithNumber("depth", mcp.Description("Max depth (0 = unlimited)")),
		mcp.WithBoolean("flat", mcp.Description("Flatten into a list with path breadcrumbs")),
	)...), s.handleTree)

	s.mcp.AddTool(mcp.NewTool("find", with(target, append([]mcp.ToolOption{
		mcp.WithDescription("Find the children (or descendants) of a scope matching role, title and attribute filters, ordered geometrically"),
	}, queryOpts...)...)...), s.handleFind)

	s.mcp.AddTool(mcp.NewTool("line", with(target,
		mcp.WithDescription("List the siblings sharing a visual line with an element, or the line after it"),
		mcp.WithString("pos", mcp.Required(), mcp.Description("Position path of the element")),
		mcp.WithBoolean("next", mcp.Description("Return the next line instead")),
	)...), s.handleLine)

	s.mcp.AddTool(mcp.NewTool("column", with(target,
		mcp.WithDescription("List the children of a role stacked in one column, starting from the start-th match"),
		mcp.WithString("scope", mcp.Description("Position path of the container")),
		mcp.WithString("role", mcp.Required(), mcp.Description("AX role of the column members, e.g. AXButton")),
		mcp.WithNumber("start", mcp.Description("0-based index of the anchor among the role matches")),
		mcp.WithNumber("position", mcp.Description("Return only this 1-based position in the column")),
	)...), s.handleColumn)

	s.mcp.AddTool(mcp.NewTool("get", with(target, append([]mcp.ToolOption{
		mcp.WithDescription("Read one attribute of an element"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Attribute: value, title, enabled, or any AX name")),
	}, locate...)...)...), s.handleGet)

	s.mcp.AddTool(mcp.NewTool("set", with(target, append([]mcp.ToolOption{
		mcp.WithDescription("Write one attribute of an element"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Attribute: value, focused, or any AX name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New value; true/false and numbers are typed, quote to force a string")),
	}, locate...)...)...), s.handleSet)

	s.mcp.AddTool(mcp.NewTool("action", with(target, append([]mcp.ToolOption{
		mcp.WithDescription("Perform an accessibility action (press, cancel, pick, increment, decrement, confirm, showmenu, raise) on an element"),
		mcp.WithString("action", mcp.Description("Action to perform (default: press)")),
	}, locate...)...)...), s.handleAction)

	s.mcp.AddTool(mcp.NewTool("wait", with(target, append([]mcp.ToolOption{
		mcp.WithDescription("Poll until a query matches (or, with gone, stops matching)"),
		mcp.WithBoolean("gone", mcp.Description("Wait for the query to stop matching")),
		mcp.WithNumber("timeout", mcp.Description("Max milliseconds to wait (default 10000)")),
		mcp.WithNumber("interval", mcp.Description("Polling interval in milliseconds (default 500)")),
	}, queryOpts...)...)...), s.handleWait)
}

func with(base []mcp.ToolOption, opts ...mcp.ToolOption) []mcp.ToolOption {
	out := make([]mcp.ToolOption, 0, len(base)+len(opts))
	out = append(out, opts...)
	return append(out, base...)
}
