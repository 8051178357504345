package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"aureto/database"
	"aureto/handlers"
	"aureto/middleware"
	"aureto/migrations"
	"aureto/models"
	"aureto/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	repairBalances := flag.Bool("repair-balances", false, "Recompute wallet balances from the transaction log and exit")
	flag.Parse()

	// .env is optional; real deployments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	err := database.InitDB()
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Running migrations...")
	err = migrations.RunMigrations(database.DB)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *repairBalances {
		if err := services.RepairWalletBalances(context.Background()); err != nil {
			log.Fatalf("Balance repair failed: %v", err)
		}
		log.Println("Balance repair completed successfully. Exiting.")
		return
	}

	log.Println("Initializing Firebase Admin SDK...")
	err = middleware.InitializeFirebase()
	if err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	} else {
		log.Println("Firebase Admin SDK initialized (or running in dev mode with auth checks disabled)")
	}

	// Hourly sweep flips overdue pending invitations to expired
	services.StartScheduler()

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Configure the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Wallet routes
	protectedRouter.HandleFunc("/wallets", handlers.GetWallets).Methods("GET")
	protectedRouter.HandleFunc("/wallets", handlers.CreateWallet).Methods("POST")
	protectedRouter.HandleFunc("/wallets/{id}", handlers.DeleteWallet).Methods("DELETE")
	protectedRouter.Handle("/wallets/{id}/transactions",
		middleware.RequireWalletAction(models.ActionViewWallet)(http.HandlerFunc(handlers.GetWalletTransactions))).Methods("GET")

	// Member routes
	protectedRouter.HandleFunc("/wallets/{id}/members", handlers.GetWalletMembers).Methods("GET")
	protectedRouter.HandleFunc("/wallets/{id}/members/{userId}", handlers.UpdateMemberRole).Methods("PUT")
	protectedRouter.HandleFunc("/wallets/{id}/members/{userId}", handlers.RemoveMember).Methods("DELETE")

	// Invitation routes
	protectedRouter.HandleFunc("/wallets/{id}/invitations", handlers.InviteMember).Methods("POST")
	protectedRouter.HandleFunc("/wallets/{id}/invitations", handlers.GetWalletInvitations).Methods("GET")
	protectedRouter.HandleFunc("/invitations/{id}/accept", handlers.AcceptInvitation).Methods("POST")

	// Transaction routes
	protectedRouter.HandleFunc("/transactions", handlers.AddTransaction).Methods("POST")

	// Category routes
	protectedRouter.HandleFunc("/categories", handlers.GetCategories).Methods("GET")
	protectedRouter.HandleFunc("/categories", handlers.AddCategory).Methods("POST")
	protectedRouter.HandleFunc("/categories/{id}", handlers.UpdateCategory).Methods("PUT")

	// Budget routes
	protectedRouter.HandleFunc("/budgets", handlers.GetBudgets).Methods("GET")
	protectedRouter.HandleFunc("/budgets", handlers.CreateBudget).Methods("POST")
	protectedRouter.HandleFunc("/budgets/{id}", handlers.UpdateBudget).Methods("PUT")

	// Report routes
	protectedRouter.HandleFunc("/reports/financial-summary", handlers.GetFinancialSummary).Methods("GET")

	// User routes
	protectedRouter.HandleFunc("/users/sync", handlers.SyncUser).Methods("POST")
}
