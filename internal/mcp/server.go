package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/kektorvec/pkg/engine"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// NewMCPServer registers the vector tools of eng on a new MCP server.
func NewMCPServer(eng *engine.Engine) *mcp.Server {
	service := NewService(eng)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "kektorvec",
		Version: Version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "upsert_vectors",
		Description: "Insert or replace vectors in a namespace. The first write fixes the namespace dimension.",
	}, service.Upsert)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "query_vectors",
		Description: "Find the vectors nearest to a query vector in a namespace. Score 1 means identical direction.",
	}, service.Query)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_namespaces",
		Description: "List every namespace with its dimension and vector count.",
	}, service.ListNamespaces)

	return s
}

// NewHTTPHandler serves the tools of eng over the streamable HTTP transport.
func NewHTTPHandler(eng *engine.Engine) http.Handler {
	s := NewMCPServer(eng)
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s
	}, nil)
}
