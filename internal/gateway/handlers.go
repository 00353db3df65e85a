package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/finlabs/agent-workshop/internal/demo"
	"github.com/finlabs/agent-workshop/internal/llm"
)

type chatRequest struct {
	DemoID   string        `json:"demoId"`
	Messages []llm.Message `json:"messages"`
}

type pdfRequest struct {
	OutputFormat string        `json:"outputFormat"`
	Messages     []llm.Message `json:"messages"`
}

// handleChat runs a demo conversation and streams agent events over SSE.
// An unknown demo id is rejected before any model work happens.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, ok := demo.Get(req.DemoID)
	if !ok {
		http.Error(w, fmt.Sprintf("Demo '%s' not found", req.DemoID), http.StatusNotFound)
		return
	}

	events, err := s.runner.RunChat(r.Context(), cfg, req.Messages)
	if err != nil {
		s.log.Error().Err(err).Str("demo", req.DemoID).Msg("chat run failed to start")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.streamEvents(w, r, events)
}

// handlePDF runs a document analysis and streams agent events over SSE.
// An invalid output format is rejected before any model work happens.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	var req pdfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, ok := demo.PDFFormatInstructions[req.OutputFormat]; !ok {
		http.Error(w, "Invalid output format", http.StatusBadRequest)
		return
	}

	events, err := s.runner.RunPDF(r.Context(), req.OutputFormat, req.Messages)
	if err != nil {
		s.log.Error().Err(err).Str("format", req.OutputFormat).Msg("pdf run failed to start")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.streamEvents(w, r, events)
}

func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handlePortfolioReset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
