package main

import (
	"context"
	"flag"
	"log"

	"aureto/database"
	"aureto/migrations"
	"aureto/services"

	"github.com/joho/godotenv"
)

// Standalone migration runner for deploy hooks that want the schema in
// place before the server boots.
func main() {
	repair := flag.Bool("repair", false, "Also recompute wallet balances from the transaction log")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *repair {
		if err := services.RepairWalletBalances(context.Background()); err != nil {
			log.Fatalf("Balance repair failed: %v", err)
		}
	}

	log.Println("Migrations completed successfully")
}
