package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/caselens/legal-advisor/apimodels"
	"github.com/caselens/legal-advisor/internal/analyzer"
)

const (
	serviceName    = "Legal Advisor Agent API"
	serviceVersion = "1.3.0"
)

// handleAnalyze serves both response variants; the formatted one also
// carries the sectioned-document rendering of the final answer.
func (s *Server) handleAnalyze(formatted bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodels.CaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		defer r.Body.Close()

		s.runAnalysis(w, r, req.CaseDescription, formatted)
	}
}

// handleAnalyzeGet accepts the case description as a query parameter, for
// quick manual testing.
func (s *Server) handleAnalyzeGet(w http.ResponseWriter, r *http.Request) {
	s.runAnalysis(w, r, r.URL.Query().Get("case_description"), false)
}

func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, caseDescription string, formatted bool) {
	result, err := s.analyzer.Analyze(r.Context(), caseDescription, formatted)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	slog.Debug("Analysis request completed successfully", "steps", result.TotalSteps)
	writeJSON(w, http.StatusOK, result)
}

// handleAnalyzeStream reports analysis progress over server-sent events and
// finishes with a "complete" event carrying the full response.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req apimodels.CaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Flushes through the middleware's writer wrappers
	rc := http.NewResponseController(w)

	emit := func(ev apimodels.StreamEvent) {
		data, err := json.Marshal(ev)
		if err != nil {
			slog.Error("Failed to marshal stream event", "error", err)
			return
		}
		w.Write([]byte("data: "))
		w.Write(data)
		w.Write([]byte("\n\n"))
		if err := rc.Flush(); err != nil {
			slog.Debug("Stream flush failed", "error", err)
		}
	}

	if err := s.analyzer.AnalyzeStream(r.Context(), req.CaseDescription, true, emit); err != nil {
		slog.Error("Streaming analysis failed", "error", err)
		emit(apimodels.StreamEvent{
			Type:      "error",
			Message:   publicErrorMessage(err),
			Timestamp: time.Now(),
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Version:   serviceVersion,
		Timestamp: time.Now(),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": serviceName,
		"version": serviceVersion,
		"endpoints": map[string]string{
			"analyze_case_post":      "POST /api/v1/analyze",
			"analyze_case_formatted": "POST /api/v1/analyze/formatted",
			"analyze_case_get":       "GET /api/v1/analyze?case_description=...",
			"analyze_case_stream":    "POST /api/v1/analyze/stream (Server-Sent Events)",
			"health_check":           "GET /api/v1/health",
		},
	})
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	slog.Error("Analysis request failed", "error", err)
	switch {
	case errors.Is(err, analyzer.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analyzer.ErrAgentInvocation):
		writeError(w, http.StatusBadGateway, "analysis system is currently unavailable")
	default:
		// Do not leak internal detail on unexpected failures
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

func publicErrorMessage(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrValidation):
		return err.Error()
	case errors.Is(err, analyzer.ErrAgentInvocation):
		return "analysis system is currently unavailable"
	default:
		return "analysis failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
