package mcp

// --- Tool Arguments ---

type VectorArg struct {
	ID       string            `json:"id" jsonschema:"Unique id of the vector inside the namespace"`
	Values   []float32         `json:"values" jsonschema:"Vector components; every vector of a namespace has the same length"`
	Metadata map[string]string `json:"metadata,omitempty" jsonschema:"Optional string attributes stored with the vector"`
}

type UpsertArgs struct {
	Namespace string      `json:"namespace,omitempty" jsonschema:"Target namespace. Defaults to 'default'"`
	Vectors   []VectorArg `json:"vectors" jsonschema:"Vectors to insert or replace"`
}

type UpsertResult struct {
	UpsertedCount int `json:"upserted_count"`
}

type QueryArgs struct {
	Namespace       string    `json:"namespace,omitempty" jsonschema:"Namespace to search. Defaults to 'default'"`
	Vector          []float32 `json:"vector" jsonschema:"Query vector"`
	TopK            int       `json:"top_k,omitempty" jsonschema:"Max number of matches (default 5)"`
	IncludeValues   bool      `json:"include_values,omitempty" jsonschema:"Return the stored components of each match"`
	IncludeMetadata bool      `json:"include_metadata,omitempty" jsonschema:"Return the stored metadata of each match"`
}

type MatchResult struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Values   []float32         `json:"values,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type QueryResult struct {
	Matches []MatchResult `json:"matches"`
}

type ListNamespacesArgs struct{}

type NamespaceResult struct {
	Name        string `json:"name"`
	Dimension   int    `json:"dimension"`
	VectorCount int    `json:"vector_count"`
}

type ListNamespacesResult struct {
	Namespaces []NamespaceResult `json:"namespaces"`
}
