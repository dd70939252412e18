// Package messages defines the stored message record and the pure expiry
// rules applied to it. Nothing here touches storage or I/O.
package messages

import (
	"time"
)

// CorruptGrace bounds how long a record with an unreadable expiry blocks
// its id before create-collision reconciliation may reclaim it. The
// payload of such a record is never returned to callers.
const CorruptGrace = 24 * time.Hour

type Message struct {
	ID               string
	Payload          []byte
	ExpiresAt        time.Time
	BurnAfterReading bool
	CreatedAt        time.Time
}

type Liveness int

const (
	Live Liveness = iota
	TimeExpired
	Corrupt
)

// Canon normalizes a timestamp to the precision every comparison in the
// service uses: UTC, whole seconds. Backends round-trip timestamps at
// second precision, so finer-grained comparisons would disagree with
// what was actually stored.
func Canon(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// Classify reports the record's liveness at the given instant. A zero
// ExpiresAt means the stored expiry could not be read back and liveness
// cannot be verified.
func Classify(m *Message, now time.Time) Liveness {
	if m.ExpiresAt.IsZero() {
		return Corrupt
	}
	if !Canon(now).Before(Canon(m.ExpiresAt)) {
		return TimeExpired
	}
	return Live
}

// Reclaimable reports whether a record may be physically removed to free
// its id: any time-expired record, or a corrupt one whose grace period
// has run out.
func Reclaimable(m *Message, now time.Time) bool {
	switch Classify(m, now) {
	case TimeExpired:
		return true
	case Corrupt:
		return !Canon(now).Before(Canon(m.CreatedAt).Add(CorruptGrace))
	}
	return false
}
