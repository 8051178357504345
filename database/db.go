package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDB opens the SQLite database and configures it for concurrent use.
func InitDB() error {
	var dbPath string
	if p := os.Getenv("DATABASE_PATH"); p != "" {
		dbPath = p
	} else if os.Getenv("FLY_APP_NAME") != "" {
		// Running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "aureto.db")
	} else {
		dbPath = "./aureto.db"
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// Connection parameters to better handle concurrent writers
	dsn := dbPath + "?_journal=WAL&_busy_timeout=10000&_foreign_keys=on"
	var err error
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	if _, err = DB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}

	return DB.Ping()
}
