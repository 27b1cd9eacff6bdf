package httputil

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/observability"
)

// MaxBodyBytes bounds request bodies read with ReadBody.
const MaxBodyBytes = 16 << 20

var statusByCode = map[errors.Code]int{
	errors.ErrCodeInvalidInput:        http.StatusBadRequest,
	errors.ErrCodeInvalidPath:         http.StatusBadRequest,
	errors.ErrCodeInvalidFormat:       http.StatusBadRequest,
	errors.ErrCodeParseFailure:        http.StatusBadRequest,
	errors.ErrCodeFieldNotFound:       http.StatusNotFound,
	errors.ErrCodeNotFound:            http.StatusNotFound,
	errors.ErrCodeKindMismatch:        http.StatusUnprocessableEntity,
	errors.ErrCodeUnresolvedReference: http.StatusUnprocessableEntity,
	errors.ErrCodeSchemaViolation:     http.StatusUnprocessableEntity,
	errors.ErrCodeUnsupported:         http.StatusNotImplemented,
	errors.ErrCodeInvalidConfig:       http.StatusInternalServerError,
	errors.ErrCodeWriteFailure:        http.StatusInternalServerError,
	errors.ErrCodeInternal:            http.StatusInternalServerError,
}

// Status returns the HTTP status for err. Errors without a code are
// internal errors.
func Status(err error) int {
	if s, ok := statusByCode[errors.GetCode(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// WriteError writes err as a JSON error body with the mapped status.
func WriteError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	WriteJSON(w, Status(err), errorBody{Error: errors.UserMessage(err), Code: code})
}

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRaw writes an already encoded body.
func WriteRaw(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ReadBody reads at most MaxBodyBytes of the request body. An empty or
// oversized body is an INVALID_INPUT error.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}
	return data, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument reports each request and its response status to the
// observability request hooks.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Request().OnRequest(r.Context(), r.Method, r.URL.Path)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		observability.Request().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
