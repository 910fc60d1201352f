// Package client provides a Go client for interacting with the kektorvec API.
//
// It covers the vector routes (Upsert, Query, Delete), namespace
// administration (Namespaces, DropNamespace) and the health probe. Request
// and response bodies are the engine types, encoded as JSON.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sanonone/kektorvec/pkg/core"
	"github.com/sanonone/kektorvec/pkg/engine"
)

// --- Custom Errors ---

// APIError represents an error returned by the kektorvec API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
	// UpsertedCount is the number of vectors committed by a failed upsert.
	UpsertedCount int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

type errorResponse struct {
	Error         string `json:"error"`
	UpsertedCount int    `json:"upserted_count"`
}

// Health is the body of GET /healthz.
type Health struct {
	Status          string `json:"status"`
	DistanceBackend string `json:"distance_backend"`
}

type namespacesResponse struct {
	Namespaces []core.NamespaceInfo `json:"namespaces"`
}

// --- Client ---

// Option configures a Client.
type Option func(*Client)

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client is the Go client for interacting with kektorvec.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the server at baseURL, e.g. "http://localhost:50051".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// jsonRequest executes a request against the API and decodes the response
// into out when it is not nil.
func (c *Client) jsonRequest(method, endpoint string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error, UpsertedCount: errResp.UpsertedCount}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("invalid JSON response for %s %s: %w", method, endpoint, err)
	}
	return nil
}

// --- Vector Methods ---

// Upsert inserts or replaces vectors in namespace ("" means "default").
// On a failed batch the returned count is the number of vectors committed
// before the failure.
func (c *Client) Upsert(namespace string, vectors []engine.Vector) (int, error) {
	var resp engine.UpsertResponse
	err := c.jsonRequest(http.MethodPost, "/vectors/upsert", engine.UpsertRequest{
		Namespace: namespace,
		Vectors:   vectors,
	}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.UpsertedCount, err
		}
		return 0, err
	}
	return resp.UpsertedCount, nil
}

// Query returns the matches nearest to req.Vector, best first.
func (c *Client) Query(req engine.QueryRequest) ([]engine.Match, error) {
	var resp engine.QueryResponse
	if err := c.jsonRequest(http.MethodPost, "/vectors/query", req, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// Delete removes ids from namespace and returns how many existed.
func (c *Client) Delete(namespace string, ids ...string) (int, error) {
	var resp engine.DeleteResponse
	err := c.jsonRequest(http.MethodPost, "/vectors/delete", engine.DeleteRequest{
		Namespace: namespace,
		IDs:       ids,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}

// --- Namespace Methods ---

// Namespaces lists every namespace ordered by name.
func (c *Client) Namespaces() ([]core.NamespaceInfo, error) {
	var resp namespacesResponse
	if err := c.jsonRequest(http.MethodGet, "/namespaces", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Namespaces, nil
}

// DropNamespace deletes a namespace and all of its vectors.
func (c *Client) DropNamespace(namespace string) error {
	return c.jsonRequest(http.MethodDelete, "/namespaces/"+url.PathEscape(namespace), nil, nil)
}

// Health calls the liveness probe.
func (c *Client) Health() (*Health, error) {
	var resp Health
	if err := c.jsonRequest(http.MethodGet, "/healthz", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
