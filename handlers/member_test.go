package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aureto/models"

	"github.com/gorilla/mux"
)

func TestGetWalletMembers(t *testing.T) {
	SetupTestDB(t)
	walletID := seedWallet(t, TestUserID, "Mine", "shared")
	seedUser(t, "other", "other@example.com", "Other")
	seedMember(t, walletID, "other", models.RoleViewer)

	req := httptest.NewRequest("GET", "/wallets/"+walletID+"/members", nil)
	req = mux.SetURLVars(req, map[string]string{"id": walletID})
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()

	GetWalletMembers(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}
	var response []models.WalletMember
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(response) != 2 {
		t.Errorf("Expected 2 members, got %d", len(response))
	}
}

func TestUpdateMemberRoleLastOwnerConflict(t *testing.T) {
	SetupTestDB(t)
	walletID := seedWallet(t, TestUserID, "Mine", "shared")

	jsonBody, _ := json.Marshal(map[string]string{"role": "viewer"})
	req := httptest.NewRequest("PUT", "/wallets/"+walletID+"/members/"+TestUserID, bytes.NewBuffer(jsonBody))
	req = mux.SetURLVars(req, map[string]string{"id": walletID, "userId": TestUserID})
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()

	UpdateMemberRole(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestUpdateMemberRole(t *testing.T) {
	SetupTestDB(t)
	walletID := seedWallet(t, TestUserID, "Mine", "shared")
	seedUser(t, "other", "other@example.com", "Other")
	seedMember(t, walletID, "other", models.RoleViewer)

	jsonBody, _ := json.Marshal(map[string]string{"role": "manager"})
	req := httptest.NewRequest("PUT", "/wallets/"+walletID+"/members/other", bytes.NewBuffer(jsonBody))
	req = mux.SetURLVars(req, map[string]string{"id": walletID, "userId": "other"})
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()

	UpdateMemberRole(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}

func TestRemoveMemberSelfLeave(t *testing.T) {
	SetupTestDB(t)
	seedUser(t, "owner", "owner@example.com", "Owner")
	walletID := seedWallet(t, "owner", "Theirs", "shared")
	seedMember(t, walletID, TestUserID, models.RoleViewer)

	req := httptest.NewRequest("DELETE", "/wallets/"+walletID+"/members/"+TestUserID, nil)
	req = mux.SetURLVars(req, map[string]string{"id": walletID, "userId": TestUserID})
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()

	RemoveMember(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}

func TestRemoveMemberForbidden(t *testing.T) {
	SetupTestDB(t)
	seedUser(t, "owner", "owner@example.com", "Owner")
	seedUser(t, "victim", "victim@example.com", "Victim")
	walletID := seedWallet(t, "owner", "Theirs", "shared")
	seedMember(t, walletID, TestUserID, models.RoleManager)
	seedMember(t, walletID, "victim", models.RoleViewer)

	req := httptest.NewRequest("DELETE", "/wallets/"+walletID+"/members/victim", nil)
	req = mux.SetURLVars(req, map[string]string{"id": walletID, "userId": "victim"})
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()

	RemoveMember(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status code %d, got %d", http.StatusForbidden, w.Code)
	}
}
