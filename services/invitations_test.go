package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"aureto/database"
	"aureto/models"
)

func TestInviteRequiresManager(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	seedUser(t, "contributor", "contrib@example.com")
	walletID := createWallet(t, "owner")
	addMember(t, walletID, "contributor", models.RoleContributor)

	_, err := Invite("contributor", walletID, "new@example.com", models.RoleViewer)
	if !errors.Is(err, ErrInsufficientRole) {
		t.Errorf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestInviteRejectsRoleEscalation(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	seedUser(t, "manager", "manager@example.com")
	walletID := createWallet(t, "owner")
	addMember(t, walletID, "manager", models.RoleManager)

	_, err := Invite("manager", walletID, "new@example.com", models.RoleOwner)
	if !errors.Is(err, ErrRoleEscalation) {
		t.Errorf("expected ErrRoleEscalation, got %v", err)
	}

	// At or below the actor's rank is fine
	if _, err := Invite("manager", walletID, "new@example.com", models.RoleManager); err != nil {
		t.Errorf("manager inviting a manager should succeed, got %v", err)
	}
}

func TestInviteValidation(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	walletID := createWallet(t, "owner")

	if _, err := Invite("owner", walletID, "not-an-email", models.RoleViewer); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec for bad email, got %v", err)
	}
	if _, err := Invite("owner", walletID, "x@example.com", "admin"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec for bad role, got %v", err)
	}
}

func TestInviteRejectsExistingMemberAndDuplicates(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	walletID := createWallet(t, "owner")

	_, err := Invite("owner", walletID, "Owner@Example.com", models.RoleViewer)
	if !errors.Is(err, ErrDuplicateMember) {
		t.Errorf("expected ErrDuplicateMember for existing member, got %v", err)
	}

	if _, err := Invite("owner", walletID, "friend@example.com", models.RoleViewer); err != nil {
		t.Fatal(err)
	}
	_, err = Invite("owner", walletID, "friend@example.com", models.RoleViewer)
	if !errors.Is(err, ErrDuplicateInvitation) {
		t.Errorf("expected ErrDuplicateInvitation, got %v", err)
	}
}

func TestConcurrentInvitesCreateOnePendingRow(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	walletID := createWallet(t, "owner")

	var wg sync.WaitGroup
	results := make(chan error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, err := Invite("owner", walletID, "friend@example.com", models.RoleViewer)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrDuplicateInvitation) && !errors.Is(err, ErrStorageConflict) {
			t.Errorf("unexpected error from concurrent invite: %v", err)
		}
	}
	if succeeded < 1 {
		t.Error("expected at least one invite to succeed")
	}

	var pending int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM invitations WHERE wallet_id = ? AND email = ? AND status = ?",
		walletID, "friend@example.com", models.InvitationPending,
	).Scan(&pending)
	if err != nil {
		t.Fatal(err)
	}
	if pending != 1 {
		t.Errorf("expected exactly 1 pending invitation, got %d", pending)
	}
}

func TestInviteReturnsTokenOnce(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	walletID := createWallet(t, "owner")

	inv, err := Invite("owner", walletID, "friend@example.com", models.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}
	if inv.Token == "" {
		t.Error("expected the one-time token in the creation response")
	}

	// Listings never expose the token, and storage holds only the hash
	invitations, err := ListInvitations("owner", walletID)
	if err != nil {
		t.Fatal(err)
	}
	if len(invitations) != 1 {
		t.Fatalf("expected 1 invitation, got %d", len(invitations))
	}
	if invitations[0].Token != "" {
		t.Error("listing leaked the invitation token")
	}
	var stored string
	err = database.DB.QueryRow("SELECT token_hash FROM invitations WHERE id = ?", inv.ID).Scan(&stored)
	if err != nil {
		t.Fatal(err)
	}
	if stored == inv.Token {
		t.Error("token stored in the clear")
	}
}

func TestAcceptInvitationCreatesMembership(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	seedUser(t, "friend", "friend@example.com")
	walletID := createWallet(t, "owner")

	inv, err := Invite("owner", walletID, "friend@example.com", models.RoleContributor)
	if err != nil {
		t.Fatal(err)
	}

	member, err := AcceptInvitation(inv.ID, "friend")
	if err != nil {
		t.Fatal(err)
	}
	if member.Role != models.RoleContributor {
		t.Errorf("expected contributor membership, got %s", member.Role)
	}

	role, err := GetMemberRole(walletID, "friend")
	if err != nil {
		t.Fatal(err)
	}
	if role != models.RoleContributor {
		t.Errorf("expected contributor, got %s", role)
	}

	// A second acceptance finds nothing pending
	if _, err := AcceptInvitation(inv.ID, "friend"); !errors.Is(err, ErrInvitationNotFound) {
		t.Errorf("expected ErrInvitationNotFound on re-accept, got %v", err)
	}
}

func TestAcceptInvitationEmailMismatch(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	seedUser(t, "impostor", "impostor@example.com")
	walletID := createWallet(t, "owner")

	inv, err := Invite("owner", walletID, "friend@example.com", models.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}

	_, err = AcceptInvitation(inv.ID, "impostor")
	if !errors.Is(err, ErrEmailMismatch) {
		t.Errorf("expected ErrEmailMismatch, got %v", err)
	}

	// Invitation stays pending for the right person
	seedUser(t, "friend", "friend@example.com")
	if _, err := AcceptInvitation(inv.ID, "friend"); err != nil {
		t.Errorf("legitimate acceptance after mismatch failed: %v", err)
	}
}

func TestAcceptExpiredInvitation(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	seedUser(t, "friend", "friend@example.com")
	walletID := createWallet(t, "owner")

	inv, err := Invite("owner", walletID, "friend@example.com", models.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}

	// Push the deadline into the past
	past := time.Now().UTC().Add(-time.Hour)
	if _, err := database.DB.Exec("UPDATE invitations SET expires_at = ? WHERE id = ?", past, inv.ID); err != nil {
		t.Fatal(err)
	}

	_, err = AcceptInvitation(inv.ID, "friend")
	if !errors.Is(err, ErrInvitationExpired) {
		t.Errorf("expected ErrInvitationExpired, got %v", err)
	}

	// The overdue row was flipped to expired as a side effect
	var status string
	if err := database.DB.QueryRow("SELECT status FROM invitations WHERE id = ?", inv.ID).Scan(&status); err != nil {
		t.Fatal(err)
	}
	if status != models.InvitationExpired {
		t.Errorf("expected expired status, got %s", status)
	}

	if _, err := GetMemberRole(walletID, "friend"); !errors.Is(err, ErrNotMember) {
		t.Errorf("expired acceptance must not create membership, got %v", err)
	}
}

func TestAcceptInvitationUnknown(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "friend", "friend@example.com")

	_, err := AcceptInvitation("no-such-id", "friend")
	if !errors.Is(err, ErrInvitationNotFound) {
		t.Errorf("expected ErrInvitationNotFound, got %v", err)
	}
}

func TestExpireStaleInvitations(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "owner", "owner@example.com")
	walletID := createWallet(t, "owner")

	fresh, err := Invite("owner", walletID, "fresh@example.com", models.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}
	stale, err := Invite("owner", walletID, "stale@example.com", models.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}
	past := time.Now().UTC().Add(-time.Minute)
	if _, err := database.DB.Exec("UPDATE invitations SET expires_at = ? WHERE id = ?", past, stale.ID); err != nil {
		t.Fatal(err)
	}

	if err := ExpireStaleInvitations(); err != nil {
		t.Fatal(err)
	}

	var status string
	if err := database.DB.QueryRow("SELECT status FROM invitations WHERE id = ?", stale.ID).Scan(&status); err != nil {
		t.Fatal(err)
	}
	if status != models.InvitationExpired {
		t.Errorf("stale invitation not expired, status=%s", status)
	}
	if err := database.DB.QueryRow("SELECT status FROM invitations WHERE id = ?", fresh.ID).Scan(&status); err != nil {
		t.Fatal(err)
	}
	if status != models.InvitationPending {
		t.Errorf("fresh invitation should stay pending, status=%s", status)
	}
}
