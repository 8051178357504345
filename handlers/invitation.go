package handlers

import (
	"encoding/json"
	"net/http"

	"aureto/middleware"
	"aureto/models"
	"aureto/services"

	"github.com/gorilla/mux"
)

// InviteMember issues a pending invitation for a wallet; managers and up.
// A caller can never grant a role above their own.
func InviteMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	walletID := mux.Vars(r)["id"]

	var request struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}
	if request.Role == "" {
		request.Role = models.RoleViewer
	}

	invitation, err := services.Invite(userID, walletID, request.Email, request.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, invitation)
}

// GetWalletInvitations lists a wallet's invitations; managers and up.
func GetWalletInvitations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	walletID := mux.Vars(r)["id"]
	invitations, err := services.ListInvitations(userID, walletID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if invitations == nil {
		invitations = []models.Invitation{}
	}
	writeJSON(w, http.StatusOK, invitations)
}

// AcceptInvitation turns a pending invitation into a membership for the
// caller. The invitation email must match the caller's synced identity.
func AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	invitationID := mux.Vars(r)["id"]
	member, err := services.AcceptInvitation(invitationID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}
