package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/kektorvec/pkg/engine"
)

// Service implements the MCP tools on top of an Engine.
type Service struct {
	engine *engine.Engine
}

func NewService(eng *engine.Engine) *Service {
	return &Service{engine: eng}
}

// --- Tool Handlers ---

func (s *Service) Upsert(ctx context.Context, req *mcp.CallToolRequest, args UpsertArgs) (*mcp.CallToolResult, UpsertResult, error) {
	vectors := make([]engine.Vector, len(args.Vectors))
	for i, v := range args.Vectors {
		vectors[i] = engine.Vector{ID: v.ID, Values: v.Values, Metadata: v.Metadata}
	}

	resp, err := s.engine.Upsert(engine.UpsertRequest{Namespace: args.Namespace, Vectors: vectors})
	if err != nil {
		return nil, UpsertResult{UpsertedCount: resp.UpsertedCount},
			fmt.Errorf("upsert failed after %d vectors: %w", resp.UpsertedCount, err)
	}
	return nil, UpsertResult{UpsertedCount: resp.UpsertedCount}, nil
}

func (s *Service) Query(ctx context.Context, req *mcp.CallToolRequest, args QueryArgs) (*mcp.CallToolResult, QueryResult, error) {
	resp, err := s.engine.Query(engine.QueryRequest{
		Namespace:       args.Namespace,
		Vector:          args.Vector,
		TopK:            args.TopK,
		IncludeValues:   args.IncludeValues,
		IncludeMetadata: args.IncludeMetadata,
	})
	if err != nil {
		return nil, QueryResult{}, fmt.Errorf("query failed: %w", err)
	}

	out := QueryResult{Matches: make([]MatchResult, len(resp.Matches))}
	for i, m := range resp.Matches {
		out.Matches[i] = MatchResult{ID: m.ID, Score: m.Score, Values: m.Values, Metadata: m.Metadata}
	}
	return nil, out, nil
}

func (s *Service) ListNamespaces(ctx context.Context, req *mcp.CallToolRequest, args ListNamespacesArgs) (*mcp.CallToolResult, ListNamespacesResult, error) {
	infos := s.engine.Namespaces()
	out := ListNamespacesResult{Namespaces: make([]NamespaceResult, len(infos))}
	for i, info := range infos {
		out.Namespaces[i] = NamespaceResult{Name: info.Name, Dimension: info.Dimension, VectorCount: info.VectorCount}
	}
	return nil, out, nil
}
