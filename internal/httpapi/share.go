// Package httpapi serves the public share links handed out by
// FinanceService.ShareCalculation.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mmynk/boatfinance/internal/finance"
	"github.com/mmynk/boatfinance/internal/models"
	"github.com/mmynk/boatfinance/pkg/api"
)

// SharedCalculationGetter is the part of finance.Manager the share page needs.
type SharedCalculationGetter interface {
	GetShared(ctx context.Context, token string) (*models.FinanceCalculation, error)
}

// errorBody is the JSON error shape of this package.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      finance.Code `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"requestId"`
}

type sharedBody struct {
	Calculation *models.FinanceCalculation `json:"calculation"`
}

// NewRouter returns a router serving GET /finance/shared/{token}. Other
// methods on that path get 405 with code METHOD_NOT_ALLOWED.
func NewRouter(shared SharedCalculationGetter) *mux.Router {
	h := &shareHandler{shared: shared}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.HandleFunc(finance.SharePath+"{token}", h.getShared).Methods(http.MethodGet, http.MethodHead)
	r.MethodNotAllowedHandler = requestIDMiddleware(http.HandlerFunc(methodNotAllowed))
	r.NotFoundHandler = requestIDMiddleware(http.HandlerFunc(notFound))
	return r
}

type shareHandler struct {
	shared SharedCalculationGetter
}

func (h *shareHandler) getShared(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	calc, err := h.shared.GetShared(r.Context(), token)
	if err != nil {
		var ferr *finance.Error
		if !errors.As(err, &ferr) {
			ferr = &finance.Error{Code: finance.CodeCalculation, Message: "Unable to process finance calculation", Err: err}
		}
		writeError(w, r, statusFor(ferr.Code), ferr.Code, ferr.Message)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, sharedBody{Calculation: calc})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, r, http.StatusMethodNotAllowed, finance.CodeMethodNotAllowed, "Method not allowed")
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, finance.CodeNotFound, "Not found")
}

func statusFor(code finance.Code) int {
	switch code {
	case finance.CodeValidation:
		return http.StatusBadRequest
	case finance.CodeNotFound:
		return http.StatusNotFound
	case finance.CodeUnauthorized:
		return http.StatusUnauthorized
	case finance.CodeForbidden:
		return http.StatusForbidden
	case finance.CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code finance.Code, message string) {
	requestID := w.Header().Get(api.RequestIDKey)
	slog.Warn("Share page error",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"code", code,
		"request_id", requestID,
	)
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message, RequestID: requestID}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// requestIDMiddleware reuses the inbound Request-Id header or mints one and
// sets it on the response before the handler runs.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(api.RequestIDKey)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		w.Header().Set(api.RequestIDKey, id)
		next.ServeHTTP(w, r)
	})
}
