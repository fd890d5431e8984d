// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Scholarmap directory queries for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/scholarmap/internal/apperr"
	"github.com/starford/scholarmap/internal/filter"
	"github.com/starford/scholarmap/internal/ordering"
	"github.com/starford/scholarmap/internal/profileservice"
)

// TaxonomyURI is the resource URI of the Markdown taxonomy overview.
const TaxonomyURI = "scholarmap://taxonomy"

// Server wraps the MCP server with Scholarmap tools.
type Server struct {
	mcp *server.MCPServer
	svc *profileservice.Service
}

// New creates a new MCP server with all Scholarmap tools registered.
func New(svc *profileservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Scholarmap",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_researchers",
		mcp.WithDescription("Search researchers by name, affiliation or interest. Results are ordered by name."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of hits (default 20)")),
	), s.searchResearchers)

	s.mcp.AddTool(mcp.NewTool("filter_researchers",
		mcp.WithDescription("List researchers under a taxonomy node or category. "+
			"Set at most one of track (optionally with subtrack), area or category. "+
			"Read the scholarmap://taxonomy resource or call taxonomy_counts for valid names."),
		mcp.WithString("track", mcp.Description("Track name, or 'all'")),
		mcp.WithString("subtrack", mcp.Description("Subtrack name; requires track")),
		mcp.WithString("area", mcp.Description("Area name")),
		mcp.WithString("category", mcp.Description("Category name")),
		mcp.WithString("sort", mcp.Description("Sort key"), mcp.Enum("az", "hindex", "citations", "shuffle")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 50)")),
		mcp.WithNumber("offset", mcp.Description("Number of researchers to skip")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed from a previous page; keeps the shuffled order stable across pages")),
	), s.filterResearchers)

	s.mcp.AddTool(mcp.NewTool("get_researcher",
		mcp.WithDescription("Get the full profile of a researcher by exact name, including resolved location."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Researcher name")),
	), s.getResearcher)

	s.mcp.AddTool(mcp.NewTool("taxonomy_counts",
		mcp.WithDescription("Returns the track / subtrack / area tree with the number of researchers at each node."),
	), s.taxonomyCounts)

	s.mcp.AddTool(mcp.NewTool("location_stats",
		mcp.WithDescription("Returns how many researchers could be placed on the map and the countries covered."),
	), s.locationStats)

	s.mcp.AddTool(mcp.NewTool("list_interests",
		mcp.WithDescription("Lists the interest vocabulary with frequencies."),
		mcp.WithString("kind", mcp.Description("Vocabulary"), mcp.Enum("raw", "standardized")),
	), s.listInterests)

	s.mcp.AddResource(
		mcp.NewResource(TaxonomyURI, "Research Taxonomy",
			mcp.WithResourceDescription("Tracks, subtracks and areas with researcher counts."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTaxonomyResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func optString(req mcp.CallToolRequest, name string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return ""
}

func (s *Server) searchResearchers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) filterResearchers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := ordering.ParseKey(optString(req, "sort"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q := profileservice.Query{
		State: filter.State{
			Track:    optString(req, "track"),
			Subtrack: optString(req, "subtrack"),
			Area:     optString(req, "area"),
			Category: optString(req, "category"),
		},
		Sort:   key,
		Seed:   uint64(max(req.GetInt("seed", 0), 0)),
		Limit:  req.GetInt("limit", 0),
		Offset: req.GetInt("offset", 0),
	}
	page, err := s.svc.List(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(page)
}

func (s *Server) getResearcher(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, err := s.svc.Get(ctx, name)
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(r)
}

func (s *Server) taxonomyCounts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tree, err := s.svc.Taxonomy(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tree)
}

func (s *Server) locationStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.svc.LocationStats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

func (s *Server) listInterests(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	terms, err := s.svc.Interests(ctx, optString(req, "kind"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(terms)
}

func (s *Server) readTaxonomyResource(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tree, err := s.svc.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TaxonomyURI,
			MIMEType: "text/markdown",
			Text:     RenderTaxonomy(tree),
		},
	}, nil
}
