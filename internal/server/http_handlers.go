package server

import (
	"errors"
	"net/http"

	"github.com/sanonone/kektorvec/pkg/core/distance"
	"github.com/sanonone/kektorvec/pkg/core/types"
	"github.com/sanonone/kektorvec/pkg/engine"
)

// registerHTTPHandlers sets up the REST API routes.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /vectors/upsert", s.handleUpsert)
	mux.HandleFunc("POST /vectors/query", s.handleQuery)
	mux.HandleFunc("POST /vectors/delete", s.handleDelete)
	mux.HandleFunc("GET /namespaces", s.handleListNamespaces)
	mux.HandleFunc("DELETE /namespaces/{namespace}", s.handleDropNamespace)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, r, http.StatusOK, HealthResponse{Status: "ok", DistanceBackend: distance.Backend()})
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var req engine.UpsertRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeHTTPError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.Engine.Upsert(req)
	if err != nil {
		count := resp.UpsertedCount
		s.writeHTTPResponse(w, r, statusFor(err), ErrorResponse{Error: err.Error(), UpsertedCount: &count})
		return
	}
	s.writeHTTPResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req engine.QueryRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeHTTPError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.Engine.Query(req)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeHTTPResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req engine.DeleteRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeHTTPError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.Engine.Delete(req)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeHTTPResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleListNamespaces(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, r, http.StatusOK, NamespacesResponse{Namespaces: s.Engine.Namespaces()})
}

func (s *Server) handleDropNamespace(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("namespace")
	if err := s.Engine.DropNamespace(ns); err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	s.writeHTTPResponse(w, r, http.StatusOK, DropNamespaceResponse{Namespace: ns, Dropped: true})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Engine failure", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeHTTPError(w, r, status, err.Error())
}

func (s *Server) writeHTTPResponse(w http.ResponseWriter, r *http.Request, statusCode int, payload any) {
	if err := encodeResponse(w, r, statusCode, payload); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *Server) writeHTTPError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	s.writeHTTPResponse(w, r, statusCode, ErrorResponse{Error: message})
}
