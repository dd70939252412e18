// Package storage holds the message store: the Backend capability
// interface with its valkey and in-memory implementations, and the Store
// facade that layers expiry rules on top of whichever backend is
// configured.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/pudottapommin/ephemeral-messages-service/pkg/messages"
)

var (
	// ErrRecordNotFound covers missing, expired and already-burned records.
	ErrRecordNotFound = errors.New("storage: record not found")
	// ErrRecordExists is the backend's raw id collision, before any
	// liveness check. The Store reconciles it into ErrDuplicateID or a
	// retried insert.
	ErrRecordExists = errors.New("storage: record already exists")
	// ErrDuplicateID means a live record already holds the id.
	ErrDuplicateID = errors.New("storage: duplicate id")
	// ErrInvalidExpiry rejects an expiry that is not strictly in the future.
	ErrInvalidExpiry = errors.New("storage: expiry not in the future")
	// ErrBackendUnavailable wraps transient transport failures, timeouts
	// included. Never returned for a record that is merely absent.
	ErrBackendUnavailable = errors.New("storage: backend unavailable")
	// ErrCorruptRecord marks a stored record whose expiry cannot be read
	// back; its payload is withheld rather than served on a guessed expiry.
	ErrCorruptRecord = errors.New("storage: corrupt record")
)

// Backend is the raw persistence capability. Implementations store and
// return records as-is: expiry filtering is the Store's job, which keeps
// backends dumb and swappable.
type Backend interface {
	// Insert fails with ErrRecordExists if the id is present in raw
	// storage, whether or not that record is itself expired.
	Insert(ctx context.Context, m messages.Message) error
	// Get returns the stored record without expiry filtering, or
	// ErrRecordNotFound.
	Get(ctx context.Context, id string) (*messages.Message, error)
	// Delete removes the record, or reports ErrRecordNotFound.
	Delete(ctx context.Context, id string) error
	// DeleteExpired bulk-removes records with expiresAt <= now and
	// returns how many went away.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// fetchDeleter is an optional backend capability: fetch a record and
// remove it as one conditional operation. The Store prefers it for
// burn-after-reading so that concurrent readers cannot both win.
type fetchDeleter interface {
	FetchDelete(ctx context.Context, id string) (*messages.Message, error)
}
