package server

import "github.com/sanonone/kektorvec/pkg/core"

// Request and response bodies of the vector routes are the engine types
// (engine.UpsertRequest, engine.QueryResponse, ...). The types below cover
// what only the HTTP layer returns.

// ErrorResponse is the body of every error status.
type ErrorResponse struct {
	Error string `json:"error"`
	// UpsertedCount is set on a failed upsert to the number of vectors
	// committed before the failure.
	UpsertedCount *int `json:"upserted_count,omitempty"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status          string `json:"status"`
	DistanceBackend string `json:"distance_backend"`
}

// NamespacesResponse is returned by GET /namespaces.
type NamespacesResponse struct {
	Namespaces []core.NamespaceInfo `json:"namespaces"`
}

// DropNamespaceResponse is returned by DELETE /namespaces/{namespace}.
type DropNamespaceResponse struct {
	Namespace string `json:"namespace"`
	Dropped   bool   `json:"dropped"`
}
