package engine

// The request and response types below are shared by the HTTP transport,
// the MCP tools and the Go client. JSON tags are also used by the msgpack
// codec.

// Vector is one record of an upsert batch.
type Vector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// UpsertRequest writes a batch of vectors into one namespace.
type UpsertRequest struct {
	// Namespace defaults to "default".
	Namespace string   `json:"namespace,omitempty"`
	Vectors   []Vector `json:"vectors"`
}

// UpsertResponse reports how many vectors were applied. On a failed batch it
// still carries the number committed before the failure.
type UpsertResponse struct {
	UpsertedCount int `json:"upserted_count"`
}

// QueryRequest searches one namespace for the vectors nearest to Vector.
type QueryRequest struct {
	Namespace string    `json:"namespace,omitempty"`
	Vector    []float32 `json:"vector"`
	// TopK defaults to 5 when not positive.
	TopK            int  `json:"top_k,omitempty"`
	IncludeValues   bool `json:"include_values,omitempty"`
	IncludeMetadata bool `json:"include_metadata,omitempty"`
}

// Match is one query hit. Score is 1 - distance, so 1 is an exact match
// under cosine distance.
type Match struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Values   []float32         `json:"values,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// QueryResponse lists matches nearest first.
type QueryResponse struct {
	Matches []Match `json:"matches"`
}

// DeleteRequest removes vectors by id from one namespace.
type DeleteRequest struct {
	Namespace string   `json:"namespace,omitempty"`
	IDs       []string `json:"ids"`
}

// DeleteResponse reports how many of the requested ids existed.
type DeleteResponse struct {
	DeletedCount int `json:"deleted_count"`
}
