package chi

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mapvista/internal/domain"
	logpkg "github.com/kailas-cloud/mapvista/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorCode is the machine-readable error code of ErrorResponse.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeIndexNotFound     ErrorCode = "index_not_found"
	CodeRecordNotFound    ErrorCode = "record_not_found"
	CodeNoIndexSelected   ErrorCode = "no_index_selected"
	CodeInvalidFilter     ErrorCode = "invalid_filter"
	CodeInvalidSort       ErrorCode = "invalid_sort"
	CodeSourceUnavailable ErrorCode = "source_unavailable"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrIndexNotFound, http.StatusNotFound, CodeIndexNotFound),
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, CodeRecordNotFound),
		sentinelHandler(domain.ErrNoIndexSelected, http.StatusConflict, CodeNoIndexSelected),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, CodeInvalidFilter),
		sentinelHandler(domain.ErrInvalidSort, http.StatusBadRequest, CodeInvalidSort),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusBadGateway, CodeSourceUnavailable),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrIndexNotFound,
		domain.ErrRecordNotFound,
		domain.ErrNoIndexSelected,
		domain.ErrInvalidFilter,
		domain.ErrInvalidSort,
		domain.ErrSourceUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// validationMessage keeps the detail of client errors, which carry no internals.
func validationMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidFilter) || errors.Is(err, domain.ErrInvalidSort) {
		return err.Error()
	}
	return safeDomainMessage(err)
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("Domain error", zap.Error(err))
	msg := validationMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("Internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
