package middleware

import (
	"errors"
	"net/http"

	"aureto/services"

	"github.com/gorilla/mux"
)

// RequireWalletAction gates a route on the role matrix for the wallet named
// by the {id} path variable. Handlers whose wallet comes from the request
// body call services.Authorize themselves instead.
func RequireWalletAction(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserIDFromContext(r)
			if userID == "" {
				http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
				return
			}

			walletID := mux.Vars(r)["id"]
			if walletID == "" {
				http.Error(w, "Wallet ID is required", http.StatusBadRequest)
				return
			}

			if err := services.Authorize(userID, walletID, action); err != nil {
				switch {
				case errors.Is(err, services.ErrNotMember):
					http.Error(w, "Forbidden: Not a member of this wallet", http.StatusForbidden)
				case errors.Is(err, services.ErrInsufficientRole):
					http.Error(w, "Forbidden: Insufficient role privileges", http.StatusForbidden)
				default:
					http.Error(w, "Failed to check permissions: "+err.Error(), http.StatusInternalServerError)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
