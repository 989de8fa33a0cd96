package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/corebank/ledger-service/internal/commons"
)

// requestTimeout bounds every handler, so a storage lock wait surfaces as a
// transient failure the caller can retry instead of hanging the connection.
const requestTimeout = 5 * time.Second

func register(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler, pattern string, handler http.HandlerFunc) {
	var wrapped http.Handler = handler
	if authMiddleware != nil {
		wrapped = authMiddleware(wrapped)
	}
	mux.Handle(pattern, wrapped)
}

func errorBody(message string, errs ...string) commons.Response[struct{}] {
	return commons.ErrorResponse[struct{}](message, errs...)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func statusForFailure(message string) int {
	switch message {
	case "validation failed":
		return http.StatusBadRequest
	case "Account not found", "Customer not found":
		return http.StatusNotFound
	case "Insufficient balance":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
