package handlers

import (
	"encoding/json"
	"net/http"

	"aureto/middleware"
	"aureto/models"
	"aureto/services"

	"github.com/gorilla/mux"
)

// GetWalletMembers lists a wallet's members; any member may look.
func GetWalletMembers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	walletID := mux.Vars(r)["id"]
	members, err := services.ListMembers(userID, walletID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if members == nil {
		members = []models.WalletMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

// UpdateMemberRole changes another member's role; owners only. The last
// owner cannot be demoted without promoting a replacement first.
func UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	walletID := vars["id"]
	targetUserID := vars["userId"]

	var request struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.Role == "" {
		http.Error(w, "role is required", http.StatusBadRequest)
		return
	}

	if err := services.ChangeMemberRole(userID, walletID, targetUserID, request.Role); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// RemoveMember removes a member; owners can remove anyone, members can
// remove themselves.
func RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	walletID := vars["id"]
	targetUserID := vars["userId"]

	if err := services.RemoveMember(userID, walletID, targetUserID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
