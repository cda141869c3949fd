// Package mcp exposes the finals lookups as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"net/http"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okian/finals/internal/domain/model"
	"github.com/okian/finals/pkg/logger"
)

// Default implementation identity advertised to clients.
const (
	DefaultName    = "finals-mcp"
	DefaultVersion = "1.0.0"
)

// Dependencies required by the tool handlers.
type Dependencies interface {
	WinsFor(ctx context.Context, entity string) model.WinsResult
	ResultFor(ctx context.Context, year int) model.ResultLookup
	ChoroplethData(ctx context.Context) []model.WinCount
	Selections(ctx context.Context) model.Selections
	Editions(ctx context.Context) []model.EditionRecord
	DescribeWins(r model.WinsResult) string
	DescribeResult(r model.ResultLookup) string
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server owns the MCP server and its tool registry.
type Server struct {
	server   *gomcp.Server
	registry []ToolInfo
	logger   logger.Logger
	name     string
	version  string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithImplementation overrides the name and version advertised to clients.
func WithImplementation(name, version string) Option {
	return func(s *Server) {
		if name != "" {
			s.name = name
		}
		if version != "" {
			s.version = version
		}
	}
}

// NewServer builds an MCP server with every finals tool registered.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{name: DefaultName, version: DefaultVersion}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.server = gomcp.NewServer(&gomcp.Implementation{Name: s.name, Version: s.version}, nil)

	addTool(s, &gomcp.Tool{
		Name:        ToolWinsFor,
		Description: "Number of World Cup titles won by a country (exact name match)",
	}, winsForHandler(deps, s.logger))
	addTool(s, &gomcp.Tool{
		Name:        ToolResultFor,
		Description: "Winner and runner-up of the World Cup final in a given year",
	}, resultForHandler(deps, s.logger))
	addTool(s, &gomcp.Tool{
		Name:        ToolWinCounts,
		Description: "Title counts for every country that has won the World Cup",
	}, winCountsHandler(deps))
	addTool(s, &gomcp.Tool{
		Name:        ToolSelections,
		Description: "Countries and years available for lookup, with the default selections",
	}, selectionsHandler(deps))

	s.server.AddResource(editionsResource(), editionsHandler(deps))
	return s
}

func addTool[In, Out any](s *Server, tool *gomcp.Tool, handler gomcp.ToolHandlerFor[In, Out]) {
	s.registry = append(s.registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	gomcp.AddTool(s.server, tool, handler)
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *gomcp.Server { return s.server }

// Tools lists the registered tools in registration order.
func (s *Server) Tools() []ToolInfo {
	out := make([]ToolInfo, len(s.registry))
	copy(out, s.registry)
	return out
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return gomcp.NewStreamableHTTPHandler(func(*http.Request) *gomcp.Server {
		return s.server
	}, &gomcp.StreamableHTTPOptions{JSONResponse: true})
}

// Register mounts the MCP endpoint at path and a tool listing at path+"/tools".
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, path string) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(path, s.Handler())
	mux.HandleFunc(path+"/tools", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{"tools": s.Tools()})
	})
	s.logger.Info(ctx, "mcp endpoint registered", logger.String("path", path), logger.Int("tools", len(s.registry)))
}
