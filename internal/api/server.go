// Package api exposes the canvas core over HTTP for rendering-layer
// clients.
//
// The server is intentionally thin: it parses JSON, calls the same
// pipeline the CLI uses, and writes JSON back. Raster and vector export
// are not served - the rendered view handle lives on the client side, so
// only the pure operations (layout, json export, types, viewport
// fitting) cross the wire.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/errors"
	"github.com/flowcanvas/flowcanvas/pkg/export"
	"github.com/flowcanvas/flowcanvas/pkg/layout"
	"github.com/flowcanvas/flowcanvas/pkg/pipeline"
	"github.com/flowcanvas/flowcanvas/pkg/registry"
)

// Server handles canvas API requests. Create with NewServer.
type Server struct {
	runner   *pipeline.Runner
	registry *registry.Registry
	logger   *log.Logger
}

// NewServer creates a server over the given runner and registry. A nil
// logger falls back to the default logger.
func NewServer(runner *pipeline.Runner, reg *registry.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, registry: reg, logger: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/types", s.handleTypes)
		r.Post("/layout", s.handleLayout)
		r.Post("/export/json", s.handleExportJSON)
		r.Post("/viewport", s.handleViewport)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTypes lists node-type definitions, filtered by the optional q
// (search) and category query parameters.
func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	defs := s.registry.All()
	if q := r.URL.Query().Get("q"); q != "" {
		defs = s.registry.Search(q)
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := defs[:0:0]
		for _, def := range defs {
			if def.Category == category {
				filtered = append(filtered, def)
			}
		}
		defs = filtered
	}
	if defs == nil {
		defs = []registry.Definition{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"types": defs})
}

type layoutRequest struct {
	Nodes   []canvas.Node `json:"nodes"`
	Edges   []canvas.Edge `json:"edges"`
	Options struct {
		Algorithm   layout.Algorithm `json:"algorithm"`
		Direction   layout.Direction `json:"direction"`
		NodeSpacing float64          `json:"nodeSpacing"`
		RankSpacing float64          `json:"rankSpacing"`
	} `json:"options"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode layout request"))
		return
	}

	nodes, cached, err := s.runner.ComputeLayout(r.Context(), canvas.Graph{Nodes: req.Nodes, Edges: req.Edges}, layout.Options{
		Algorithm:   req.Options.Algorithm,
		Direction:   req.Options.Direction,
		NodeSpacing: req.Options.NodeSpacing,
		RankSpacing: req.Options.RankSpacing,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"nodes": nodes, "cached": cached})
}

type exportRequest struct {
	Nodes    []canvas.Node  `json:"nodes"`
	Edges    []canvas.Edge  `json:"edges"`
	Metadata map[string]any `json:"metadata"`
}

// handleExportJSON returns the versioned export document as the response
// body instead of writing a file; the client triggers its own download.
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode export request"))
		return
	}
	s.writeJSON(w, http.StatusOK, export.NewDocument(req.Nodes, req.Edges, req.Metadata))
}

type viewportRequest struct {
	Nodes   []canvas.Node `json:"nodes"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Padding float64       `json:"padding"`
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode viewport request"))
		return
	}
	s.writeJSON(w, http.StatusOK, export.FitViewport(req.Nodes, req.Width, req.Height, req.Padding))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidAlgorithm,
		errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidGraph:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	s.logger.Warn("request failed", "status", status, "err", err)
	s.writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
