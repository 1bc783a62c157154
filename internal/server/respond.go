package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Tomlord1122/todolist/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// decodeJSON reads exactly one JSON object from the request body into dst.
// Every client mistake comes back as an apperror validation error.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperror.ValidationFailed("", "request body must only contain a single JSON object")
	}
	return nil
}

func decodeError(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxError):
		return apperror.ValidationFailed("", fmt.Sprintf("request body contains badly-formed JSON (at position %d)", syntaxError.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return apperror.ValidationFailed("", "request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field == "" {
			return apperror.ValidationFailed("", "request body must be a JSON object")
		}
		field := unmarshalTypeError.Field
		return apperror.ValidationFailed(field, fmt.Sprintf("%s must be %s", field, describeType(unmarshalTypeError.Type)))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperror.ValidationFailed(field, fmt.Sprintf("request body contains unknown field %q", field))
	case errors.Is(err, io.EOF):
		return apperror.ValidationFailed("", "request body must not be empty")
	case errors.As(err, &maxBytesError):
		return apperror.ValidationFailed("", fmt.Sprintf("request body must not be larger than %d bytes", maxBytesError.Limit))
	default:
		return fmt.Errorf("decoding request body: %w", err)
	}
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return "a valid " + t.String()
	}
}

// writeError is the single place errors become HTTP responses. Anything that
// is not a known client error is logged and reported as a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", `Bearer realm="todolist"`)
		status = http.StatusUnauthorized
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()),
		)
		s.respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	resp := errorResponse{Error: err.Error()}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		resp = errorResponse{Error: appErr.Message, Field: appErr.Field}
	}
	s.respondWithJSON(w, status, resp)
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, errorResponse{Error: message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("marshal JSON response", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
