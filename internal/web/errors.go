package web

// errors.go provides unified error response handling for the web layer.
//
// Every failure is:
//   - Logged with full technical details and the request ID
//   - Mapped to a user-facing message, suggested action and support code
//   - Rendered as a full HTML page, or as JSON for /api/* and JSON clients
//
// Error codes:
//
//	FETCH001 - the dataset could not be downloaded
//	PARSE001 - the dataset is not a valid population CSV
//	VAL001   - a selected country is not in the dataset
//	DATA001  - the dataset has no countries to compare
//	REQ001   - the request timed out or was cancelled
//	RATE001  - too many requests from this address
//	NF001    - no such page or chart
//	ERR000   - anything else

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/popdash/internal/dataset"
	"github.com/JonMunkholm/popdash/internal/logging"
	"github.com/JonMunkholm/popdash/internal/views"
	"github.com/JonMunkholm/popdash/internal/web/templates"
)

var (
	errNotFound    = errors.New("not found")
	errNoCountries = errors.New("dataset has no countries")
	errRateLimited = errors.New("rate limit exceeded")
)

// UserMessage is the client-facing description of an error.
type UserMessage struct {
	Message string
	Action  string
	Code    string
	Status  int
}

// MapError converts an error into a user message with a support code.
func MapError(err error) UserMessage {
	switch {
	case errors.Is(err, dataset.ErrFetch):
		return UserMessage{
			Message: "The population dataset could not be downloaded",
			Action:  "Check network access to the data source and restart the dashboard",
			Code:    "FETCH001",
			Status:  http.StatusBadGateway,
		}
	case errors.Is(err, dataset.ErrParse):
		return UserMessage{
			Message: "The population dataset could not be read",
			Action:  "Verify the data source serves a CSV with Country Name, Year and Value columns",
			Code:    "PARSE001",
			Status:  http.StatusBadGateway,
		}
	case errors.Is(err, views.ErrUnknownCountry):
		return UserMessage{
			Message: "The selected country is not in the dataset",
			Action:  "Pick a country from the list",
			Code:    "VAL001",
			Status:  http.StatusBadRequest,
		}
	case errors.Is(err, errNoCountries):
		return UserMessage{
			Message: "The dataset contains no countries to compare",
			Code:    "DATA001",
			Status:  http.StatusNotFound,
		}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return UserMessage{
			Message: "The request took too long to complete",
			Action:  "Please try again in a few moments",
			Code:    "REQ001",
			Status:  http.StatusGatewayTimeout,
		}
	case errors.Is(err, errRateLimited):
		return UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a minute and try again",
			Code:    "RATE001",
			Status:  http.StatusTooManyRequests,
		}
	case errors.Is(err, errNotFound):
		return UserMessage{
			Message: "Page not found",
			Code:    "NF001",
			Status:  http.StatusNotFound,
		}
	default:
		return UserMessage{
			Message: "An unexpected error occurred",
			Action:  "Please try again",
			Code:    "ERR000",
			Status:  http.StatusInternalServerError,
		}
	}
}

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the mapped message in the format the
// client expects.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", msg.Status,
		"code", msg.Code,
		"error", err.Error(),
	}
	if msg.Status >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	if wantsJSON(r) {
		respondErrorJSON(w, msg)
		return
	}
	s.respondErrorHTML(w, r, msg)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg UserMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(msg.Status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML renders the error inside the dashboard layout.
func (s *Server) respondErrorHTML(w http.ResponseWriter, r *http.Request, msg UserMessage) {
	page := templates.Layout(
		templates.PageMeta{Tab: tabFor(r)},
		templates.ErrorAlert(msg.Message, msg.Action, msg.Code),
	)

	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		http.Error(w, msg.Message+" ("+msg.Code+")", msg.Status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(msg.Status)
	w.Write(buf.Bytes())
}

// tabFor picks the tab to highlight for a request path.
func tabFor(r *http.Request) templates.Tab {
	switch {
	case r.URL.Path == "/":
		return templates.TabGlobal
	case strings.HasPrefix(r.URL.Path, "/compare"):
		return templates.TabCompare
	default:
		return templates.TabNone
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/healthz" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
