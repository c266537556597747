package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const maxRequestBody = 4 << 10

type boardResponse struct {
	Rows  [][]int `json:"rows"`
	Score *int    `json:"score,omitempty"`
}

type moveRequest struct {
	Action string `json:"action"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var errBadDirection = errors.New("unknown direction")

// Handler returns the HTTP routes of the board service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /board", s.handleBoard)
	mux.HandleFunc("POST /board/move", s.handleMove)
	mux.HandleFunc("POST /board/reset", s.handleReset)
	return s.logRequests(mux)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	rows, score := s.snapshot()
	s.writeBoard(w, rows, score)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	dir, err := decodeMove(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	rows, score, err := s.move(dir)
	if err != nil {
		s.logger.Error("move failed", "direction", dir, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	s.writeBoard(w, rows, score)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	rows, score, err := s.reset()
	if err != nil {
		s.logger.Error("reset failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	s.writeBoard(w, rows, score)
}

func decodeMove(body io.Reader) (core.Direction, error) {
	var req moveRequest
	if err := json.NewDecoder(io.LimitReader(body, maxRequestBody)).Decode(&req); err != nil {
		return 0, errors.New("invalid request body")
	}

	dir, err := core.ParseDirection(req.Action)
	if err != nil {
		return 0, errBadDirection
	}
	return dir, nil
}

// writeBoard omits the score in legacy mode, matching the v1 protocol.
func (s *Server) writeBoard(w http.ResponseWriter, rows Grid, score int) {
	resp := boardResponse{Rows: rows}
	if !s.config.Legacy {
		resp.Score = &score
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs each request with the caller's request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get("X-Request-ID"),
		)
	})
}
