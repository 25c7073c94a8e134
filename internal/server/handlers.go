package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/setpart/internal/errors"
	"github.com/agbru/setpart/internal/service"
)

// DefaultAlgorithm is used when a request names no generator.
const DefaultAlgorithm = "successor"

// PartitionsResponse is the body of a successful /partitions request.
type PartitionsResponse struct {
	N           int       `json:"n"`
	Algorithm   string    `json:"algorithm"`
	Bell        string    `json:"bell"`
	Count       int       `json:"count"`
	Complete    bool      `json:"complete"`
	Fingerprint string    `json:"fingerprint"`
	Partitions  [][][]int `json:"partitions"`
	Duration    string    `json:"duration"`
}

// CountResponse is the body of a successful /count request.
type CountResponse struct {
	N    int    `json:"n"`
	Bell string `json:"bell"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ParseError is a request parameter problem with its HTTP status.
type ParseError struct {
	Message    string
	StatusCode int
}

func (e ParseError) Error() string { return e.Message }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{"algorithms": s.service.Algorithms()})
}

// handleCount answers GET /count?n=<size> with the Bell number.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	n, err := parseN(r)
	if err != nil {
		s.writeParseError(w, err)
		return
	}
	bell, err := s.service.Count(n)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, CountResponse{N: n, Bell: bell.String()})
}

// handlePartitions answers GET /partitions?n=&limit=&algo= with the first
// partitions of {1,…,n} in generation order.
func (s *Server) handlePartitions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	n, limit, algo, err := parsePartitionsParams(r)
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.service.Enumerate(ctx, algo, n, limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	parts := make([][][]int, len(res.Partitions))
	for i, p := range res.Partitions {
		parts[i] = p
	}
	s.writeJSONResponse(w, http.StatusOK, PartitionsResponse{
		N:           res.N,
		Algorithm:   res.Algorithm,
		Bell:        res.Bell.String(),
		Count:       len(res.Partitions),
		Complete:    res.Complete,
		Fingerprint: fmt.Sprintf("%016x", res.Fingerprint),
		Partitions:  parts,
		Duration:    time.Since(start).String(),
	})
}

func parseN(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return 0, ParseError{Message: "Missing 'n' parameter", StatusCode: http.StatusBadRequest}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ParseError{Message: "Invalid 'n' parameter: must be a non-negative integer", StatusCode: http.StatusBadRequest}
	}
	return n, nil
}

// parsePartitionsParams reads n (required), limit (optional, 0 = service
// maximum) and algo (optional, DefaultAlgorithm).
func parsePartitionsParams(r *http.Request) (n int, limit uint64, algo string, err error) {
	if n, err = parseN(r); err != nil {
		return 0, 0, "", err
	}
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, "", ParseError{Message: "Invalid 'limit' parameter: must be a non-negative integer", StatusCode: http.StatusBadRequest}
		}
	}
	algo = q.Get("algo")
	if algo == "" {
		algo = DefaultAlgorithm
	}
	return n, limit, algo, nil
}

func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	var parseErr ParseError
	if errors.As(err, &parseErr) {
		s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// writeServiceError maps service errors to HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var validation apperrors.ValidationError
	switch {
	case errors.Is(err, service.ErrMaxValueExceeded):
		s.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("%v. This limit prevents resource exhaustion.", err))
	case errors.Is(err, service.ErrUnknownAlgorithm), errors.As(err, &validation):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled):
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "Enumeration canceled")
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "Enumeration timed out")
	default:
		s.logger.Error().Err(err).Msg("request failed")
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
