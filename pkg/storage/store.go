package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pudottapommin/ephemeral-messages-service/pkg/messages"
)

// Store is the facade the HTTP layer talks to. It owns the expiry rules;
// the backend underneath only persists raw records.
type Store struct {
	backend Backend
	l       *slog.Logger
	now     func() time.Time
}

func NewStore(backend Backend, l *slog.Logger) *Store {
	return &Store{backend: backend, l: l, now: time.Now}
}

// Create stores a new record. The expiry must be strictly in the future.
// An id collision with a record that has itself expired (or exhausted the
// corrupt grace period) is reclaimed and the insert retried once; a
// collision with a live record is ErrDuplicateID.
func (s *Store) Create(ctx context.Context, id string, payload []byte, expiresAt time.Time, burnAfterReading bool) (*messages.Message, error) {
	now := messages.Canon(s.now())
	expiresAt = messages.Canon(expiresAt)
	if !expiresAt.After(now) {
		return nil, ErrInvalidExpiry
	}

	m := messages.Message{
		ID:               id,
		Payload:          payload,
		ExpiresAt:        expiresAt,
		BurnAfterReading: burnAfterReading,
		CreatedAt:        now,
	}

	err := s.backend.Insert(ctx, m)
	if errors.Is(err, ErrRecordExists) {
		err = s.reclaimAndRetry(ctx, m, now)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) reclaimAndRetry(ctx context.Context, m messages.Message, now time.Time) error {
	existing, err := s.backend.Get(ctx, m.ID)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		// Gone between insert and fetch; the id is free again.
	case errors.Is(err, ErrCorruptRecord):
		s.l.Error("undecodable record blocks id, reclaiming", "id", m.ID, "op", "create", "error", err)
		if derr := s.backend.Delete(ctx, m.ID); derr != nil && !errors.Is(derr, ErrRecordNotFound) {
			return derr
		}
	case err != nil:
		return err
	case !messages.Reclaimable(existing, now):
		return ErrDuplicateID
	default:
		if messages.Classify(existing, now) == messages.Corrupt {
			s.l.Error("corrupt record past grace, reclaiming id", "id", m.ID, "op", "create")
		}
		if derr := s.backend.Delete(ctx, m.ID); derr != nil && !errors.Is(derr, ErrRecordNotFound) {
			return derr
		}
	}

	if err = s.backend.Insert(ctx, m); errors.Is(err, ErrRecordExists) {
		// Somebody else grabbed the id between our reclaim and retry.
		return ErrDuplicateID
	}
	return err
}

// Get returns a live record, consuming it when it is burn-after-reading.
// Expired records are never returned, whether or not cleanup has caught
// up with them.
func (s *Store) Get(ctx context.Context, id string) (*messages.Message, error) {
	now := s.now()

	// Cheap opportunistic sweep, as a single-process deployment can
	// afford; correctness never depends on it.
	if _, err := s.backend.DeleteExpired(ctx, now); err != nil {
		s.l.Warn("cleanup before read failed", "error", err)
	}

	m, err := s.backend.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCorruptRecord) {
			s.l.Error("record withheld from read", "id", id, "op", "get", "error", err)
		}
		return nil, err
	}

	switch messages.Classify(m, now) {
	case messages.TimeExpired:
		if derr := s.backend.Delete(ctx, id); derr != nil && !errors.Is(derr, ErrRecordNotFound) {
			s.l.Warn("failed to remove expired record", "id", id, "error", derr)
		}
		return nil, ErrRecordNotFound
	case messages.Corrupt:
		s.l.Error("record withheld from read: expiry unreadable", "id", id, "op", "get")
		return nil, fmt.Errorf("%w: %s", ErrCorruptRecord, id)
	}

	if !m.BurnAfterReading {
		return m, nil
	}

	// Burn: the removal must be settled before the payload is handed
	// out, and only one concurrent reader may win it.
	if fd, ok := s.backend.(fetchDeleter); ok {
		burned, err := fd.FetchDelete(ctx, id)
		if err != nil {
			if errors.Is(err, ErrCorruptRecord) {
				s.l.Error("record withheld from read", "id", id, "op", "get", "error", err)
			}
			return nil, err
		}
		// The id may have been deleted and re-created between the raw
		// fetch and the consume. A live burn record under the id is a
		// legitimate win either way; anything else was consumed by
		// mistake and goes back.
		if burned.BurnAfterReading && messages.Classify(burned, now) == messages.Live {
			return burned, nil
		}
		if ierr := s.backend.Insert(ctx, *burned); ierr != nil && !errors.Is(ierr, ErrRecordExists) {
			s.l.Error("failed to reinstate record consumed during burn race", "id", id, "op", "get", "error", ierr)
		}
		return nil, ErrRecordNotFound
	}

	// Separate fetch/delete calls: the delete outcome is the arbiter. A
	// reader that finds the record already gone lost the race and must
	// not serve its stale copy.
	if err = s.backend.Delete(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a record unconditionally. A record whose expiry has
// already passed is logically gone and reports ErrRecordNotFound even
// when this call is what physically removes it.
func (s *Store) Delete(ctx context.Context, id string) error {
	now := s.now()

	m, err := s.backend.Get(ctx, id)
	switch {
	case errors.Is(err, ErrCorruptRecord):
		s.l.Error("deleting undecodable record", "id", id, "op", "delete", "error", err)
		return s.backend.Delete(ctx, id)
	case err != nil:
		return err
	}

	expired := messages.Classify(m, now) == messages.TimeExpired
	if err = s.backend.Delete(ctx, id); err != nil {
		return err
	}
	if expired {
		return ErrRecordNotFound
	}
	return nil
}

// Cleanup bulk-removes time-expired records; the sweeper's entry point.
func (s *Store) Cleanup(ctx context.Context) (int, error) {
	return s.backend.DeleteExpired(ctx, s.now())
}

// Ping reports backend reachability for the health probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
