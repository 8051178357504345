package services

import (
	"errors"
	"log"
	"time"

	"github.com/mattn/go-sqlite3"
)

const maxWriteRetries = 3

// isBusy reports whether an error is a transient SQLite contention error.
func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// withWriteRetry runs fn, retrying a bounded number of times on storage
// contention. Each attempt re-reads state, so retried operations are
// re-validated before taking effect. After the retry budget is exhausted the
// failure surfaces as ErrStorageConflict.
func withWriteRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		err = fn()
		if err == nil || !isBusy(err) {
			return err
		}
		log.Printf("Storage contention, retrying (attempt %d): %v", attempt+1, err)
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return ErrStorageConflict
}
