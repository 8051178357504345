package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"aureto/services"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Authorization and validation failures are reported verbatim.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrInsufficientRole),
		errors.Is(err, services.ErrRoleEscalation),
		errors.Is(err, services.ErrEmailMismatch):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrInvalidSpec),
		errors.Is(err, services.ErrCategoryTypeMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrWalletNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrBudgetNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrInvitationExpired):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.Is(err, services.ErrDuplicateMember),
		errors.Is(err, services.ErrDuplicateInvitation),
		errors.Is(err, services.ErrLastOwner),
		errors.Is(err, services.ErrStorageConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HealthCheck responds to liveness probes.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
