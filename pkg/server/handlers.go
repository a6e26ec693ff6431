package server

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "github.com/matzehuels/gridflow/pkg/errors"
	"github.com/matzehuels/gridflow/pkg/pipeline"
)

// DiagramRequest is the body of POST /v1/diagram.
type DiagramRequest struct {
	// Input is the connection text, e.g. "A -> B\nB -> C".
	Input string `json:"input"`

	// Options configure generation and export. Empty means defaults.
	Options pipeline.Options `json:"options"`
}

// DiagramResponse is the success body of POST /v1/diagram.
// Artifacts are base64-encoded by the JSON marshaller.
type DiagramResponse struct {
	Text        string            `json:"text"`
	DiagramHash string            `json:"diagram_hash"`
	Artifacts   map[string][]byte `json:"artifacts,omitempty"`
	NodeCount   int               `json:"node_count"`
	EdgeCount   int               `json:"edge_count"`
	Cached      bool              `json:"cached"`
	DurationMS  int64             `json:"duration_ms"`
}

// ErrorResponse is the body of any non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req DiagramRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}
	if req.Input == "" {
		writeError(w, http.StatusBadRequest, "input is required", string(apperrors.ErrCodeInvalidInput))
		return
	}

	req.Options.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), req.Input, req.Options)
	if err != nil {
		writeError(w, statusForError(err), apperrors.UserMessage(err), string(apperrors.GetCode(err)))
		return
	}

	writeJSON(w, http.StatusOK, DiagramResponse{
		Text:        result.Text,
		DiagramHash: result.DiagramHash,
		Artifacts:   result.Artifacts,
		NodeCount:   result.Stats.NodeCount,
		EdgeCount:   result.Stats.EdgeCount,
		Cached:      result.CacheInfo.DiagramHit,
		DurationMS:  time.Since(start).Milliseconds(),
	})
}

// statusForError maps structured error codes onto HTTP statuses. Input
// problems are the client's fault; everything else is a 500.
func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidSyntax,
		apperrors.ErrCodeInvalidGroup,
		apperrors.ErrCodeInvalidDirection,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidOption:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
