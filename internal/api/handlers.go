package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/trainy/internal/course"
)

const maxBodyBytes = 64 << 10

// Error codes that are not generation reasons.
const (
	codeBadRequest   = "bad_request"
	codeBlankRequest = "blank_request"
	codeRateLimited  = "rate_limited"
)

type configResponse struct {
	Configured bool `json:"configured"`
}

type courseRequest struct {
	Request string `json:"request"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, configResponse{Configured: s.configured})
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))

	if !s.configured {
		s.metrics.outcome(string(course.ReasonNotConfigured))
		writeError(w, http.StatusServiceUnavailable, string(course.ReasonNotConfigured), course.ReasonNotConfigured.Message())
		return
	}

	var body courseRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		logger.Warn("invalid course request body", "error", err)
		writeError(w, http.StatusBadRequest, codeBadRequest, "Request body must be JSON like {\"request\": \"...\"}.")
		return
	}

	start := time.Now()
	content, err := s.generator.Generate(r.Context(), body.Request)
	s.metrics.latency.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, course.ErrBlankRequest) {
			s.metrics.outcome(codeBlankRequest)
			writeError(w, http.StatusBadRequest, codeBlankRequest, "Describe the course you want to generate.")
			return
		}
		reason := course.ReasonOf(err)
		if reason == "" {
			reason = course.ReasonGenerationFailed
		}
		s.metrics.outcome(string(reason))
		logger.Warn("course generation failed", "reason", string(reason), "error", err)
		writeError(w, statusFor(reason), string(reason), reason.Message())
		return
	}

	s.metrics.outcome("success")
	logger.Info("course generated", "title", content.Title, "steps", len(content.Content), "quiz", len(content.Quiz))
	writeJSON(w, http.StatusOK, content)
}

// statusFor maps a failure reason onto an HTTP status.
func statusFor(reason course.Reason) int {
	switch reason {
	case course.ReasonNotConfigured:
		return http.StatusServiceUnavailable
	case course.ReasonValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
