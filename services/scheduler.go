package services

import (
	"log"
	"time"
)

// StartScheduler starts the task scheduler for periodic tasks
func StartScheduler() {
	log.Println("Starting task scheduler...")

	go startInvitationSweeper()
}

// startInvitationSweeper expires overdue pending invitations on an hourly
// cadence. Acceptance also checks expiry, so the sweep is bookkeeping, not
// a correctness requirement.
func startInvitationSweeper() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := ExpireStaleInvitations(); err != nil {
			log.Printf("Invitation sweep failed: %v", err)
		}
	}
}
