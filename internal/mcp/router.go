// Package mcp wires the TestDino tool catalogue and documentation resource
// into an mcp-go server.
package mcp

import (
	"context"
	"fmt"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/testdino/testdino-mcp/internal/tools"
)

type route struct {
	tool    mcpgo.Tool
	handler mcpserver.ToolHandlerFunc
}

// Router dispatches tool calls and resource reads by exact name.
type Router struct {
	order  []string
	routes map[string]route
	docs   []resource
}

// NewRouter builds the router from the static tool catalogue.
func NewRouter(deps *tools.Deps) (*Router, error) {
	r := &Router{
		routes: make(map[string]route),
		docs:   resources(),
	}
	for _, def := range tools.Catalog() {
		tool, err := def.Tool()
		if err != nil {
			return nil, err
		}
		if _, dup := r.routes[def.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name: %s", def.Name)
		}
		r.order = append(r.order, def.Name)
		r.routes[def.Name] = route{tool: tool, handler: def.Handler(deps)}
	}
	return r, nil
}

// ListTools returns the catalogue in declaration order.
func (r *Router) ListTools() []mcpgo.Tool {
	out := make([]mcpgo.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.routes[name].tool)
	}
	return out
}

// CallTool runs the named tool.
func (r *Router) CallTool(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	rt, ok := r.routes[req.Params.Name]
	if !ok {
		return nil, fmt.Errorf("Unknown tool: %s", req.Params.Name)
	}
	return rt.handler(ctx, req)
}

// ListResources returns the documentation resources.
func (r *Router) ListResources() []mcpgo.Resource {
	out := make([]mcpgo.Resource, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d.Resource())
	}
	return out
}

// ReadResource returns the contents of the resource at uri.
func (r *Router) ReadResource(ctx context.Context, uri string) ([]mcpgo.ResourceContents, error) {
	for _, d := range r.docs {
		if d.URI == uri {
			return d.Contents(), nil
		}
	}
	return nil, fmt.Errorf("Unknown resource: %s", uri)
}

// NewServer builds an mcp-go server whose tools and resources all
// dispatch through r.
//
// mcp-go answers tools/call and resources/read for unregistered names
// itself, so the Unknown tool and Unknown resource errors above only
// reach callers that use CallTool or ReadResource directly.
func (r *Router) NewServer(name, version string) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		name,
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	for _, tool := range r.ListTools() {
		s.AddTool(tool, r.CallTool)
	}
	for _, res := range r.ListResources() {
		uri := res.URI
		s.AddResource(res, func(ctx context.Context, _ mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
			return r.ReadResource(ctx, uri)
		})
	}
	return s
}
