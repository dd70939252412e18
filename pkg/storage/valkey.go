package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pudottapommin/ephemeral-messages-service/pkg/messages"
	"github.com/valkey-io/valkey-go"
)

// expiryIndexKey is a sorted set of record ids scored by expiry unix
// seconds, kept so DeleteExpired can find victims without scanning keys.
const expiryIndexKey = "msg:expiry"

// expireScript removes one record only if its indexed expiry is still at
// or before the cutoff. The id may have been reclaimed and re-created
// with a future expiry between the sweep's listing and this removal; the
// re-check makes that interleaving a no-op instead of destroying the new
// record. KEYS[1] = record key, KEYS[2] = index, ARGV[1] = id,
// ARGV[2] = cutoff unix seconds.
var expireScript = valkey.NewLuaScript(`local score = redis.call('ZSCORE', KEYS[2], ARGV[1])
if score and tonumber(score) <= tonumber(ARGV[2]) then
	redis.call('ZREM', KEYS[2], ARGV[1])
	return redis.call('DEL', KEYS[1])
end
return 0`)

// wireRecord is the gob shape stored under the record key. Timestamps
// travel as strings (see timestamp.go) so rows survive inspection and
// editing with plain valkey tooling.
type wireRecord struct {
	ID               string
	Payload          []byte
	ExpiresAt        string
	BurnAfterReading bool
	CreatedAt        string
}

type valkeyBackend struct {
	client  valkey.Client
	encoder Encoder[wireRecord]
	timeout time.Duration
	l       *slog.Logger
}

// NewValkey returns the durable backend. Every call is bounded by the
// given timeout; transport failures surface as ErrBackendUnavailable.
func NewValkey(client valkey.Client, timeout time.Duration, l *slog.Logger) Backend {
	return &valkeyBackend{
		client:  client,
		encoder: GobEncoder[wireRecord]{},
		timeout: timeout,
		l:       l,
	}
}

func (b *valkeyBackend) Insert(ctx context.Context, m messages.Message) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	buf, err := b.encoder.Encode(wireRecord{
		ID:               m.ID,
		Payload:          m.Payload,
		ExpiresAt:        FormatTimestamp(m.ExpiresAt),
		BurnAfterReading: m.BurnAfterReading,
		CreatedAt:        FormatTimestamp(m.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("valkey: encoding record %q: %w", m.ID, err)
	}

	// SET NX is the uniqueness arbiter; a nil reply means the key is
	// already held.
	err = b.client.Do(ctx, b.client.B().Set().
		Key(recordKey(m.ID)).
		Value(valkey.BinaryString(buf)).
		Nx().
		Build()).Error()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return ErrRecordExists
		}
		return fmt.Errorf("valkey: storing record %q: %w: %w", m.ID, ErrBackendUnavailable, err)
	}

	// The index only feeds the sweeper; if it cannot be written the
	// record still expires lazily on read, so log and keep the insert.
	score := float64(messages.Canon(m.ExpiresAt).Unix())
	if err = b.client.Do(ctx, b.client.B().Zadd().
		Key(expiryIndexKey).
		ScoreMember().
		ScoreMember(score, m.ID).
		Build()).Error(); err != nil {
		b.l.Warn("failed to index record expiry", "id", m.ID, "error", err)
	}
	return nil
}

func (b *valkeyBackend) Get(ctx context.Context, id string) (*messages.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	buf, err := b.client.Do(ctx, b.client.B().Get().Key(recordKey(id)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("valkey: getting record %q: %w: %w", id, ErrBackendUnavailable, err)
	}
	return b.decode(id, buf)
}

func (b *valkeyBackend) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	resps := b.client.DoMulti(ctx,
		b.client.B().Del().Key(recordKey(id)).Build(),
		b.client.B().Zrem().Key(expiryIndexKey).Member(id).Build(),
	)
	n, err := resps[0].AsInt64()
	if err != nil {
		return fmt.Errorf("valkey: deleting record %q: %w: %w", id, ErrBackendUnavailable, err)
	}
	if err = resps[1].Error(); err != nil {
		b.l.Warn("failed to unindex record expiry", "id", id, "error", err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// FetchDelete reads and removes a record as one conditional GETDEL, so a
// burn-after-reading record can only be won by a single reader.
func (b *valkeyBackend) FetchDelete(ctx context.Context, id string) (*messages.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	buf, err := b.client.Do(ctx, b.client.B().Getdel().Key(recordKey(id)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("valkey: consuming record %q: %w: %w", id, ErrBackendUnavailable, err)
	}
	if err = b.client.Do(ctx, b.client.B().Zrem().Key(expiryIndexKey).Member(id).Build()).Error(); err != nil {
		b.l.Warn("failed to unindex record expiry", "id", id, "error", err)
	}
	return b.decode(id, buf)
}

func (b *valkeyBackend) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	limit := strconv.FormatInt(messages.Canon(now).Unix(), 10)
	ids, err := b.client.Do(ctx, b.client.B().Zrangebyscore().
		Key(expiryIndexKey).
		Min("-inf").
		Max(limit).
		Build()).AsStrSlice()
	if err != nil {
		return 0, fmt.Errorf("valkey: listing expired records: %w: %w", ErrBackendUnavailable, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var count int
	for _, id := range ids {
		n, derr := expireScript.Exec(ctx, b.client,
			[]string{recordKey(id), expiryIndexKey},
			[]string{id, limit}).AsInt64()
		if derr != nil {
			return count, fmt.Errorf("valkey: removing expired record %q: %w: %w", id, ErrBackendUnavailable, derr)
		}
		count += int(n)
	}
	return count, nil
}

func (b *valkeyBackend) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.client.Do(ctx, b.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("valkey: ping: %w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

// decode turns a stored wireRecord back into a message. An unreadable
// expiry leaves ExpiresAt zero so the policy classifies the record as
// corrupt; the rest of the row is preserved for diagnosis.
func (b *valkeyBackend) decode(id string, buf []byte) (*messages.Message, error) {
	var wr wireRecord
	if err := b.encoder.Decode(buf, &wr); err != nil {
		return nil, fmt.Errorf("valkey: decoding record %q: %w: %w", id, ErrCorruptRecord, err)
	}

	m := messages.Message{
		ID:               wr.ID,
		Payload:          wr.Payload,
		BurnAfterReading: wr.BurnAfterReading,
	}
	expiresAt, err := ParseTimestamp(wr.ExpiresAt)
	if err != nil {
		b.l.Warn("stored expiry is unreadable", "id", id, "raw", wr.ExpiresAt, "error", err)
	} else {
		m.ExpiresAt = expiresAt
	}
	createdAt, err := ParseTimestamp(wr.CreatedAt)
	if err != nil {
		b.l.Warn("stored creation time is unreadable", "id", id, "raw", wr.CreatedAt, "error", err)
	} else {
		m.CreatedAt = createdAt
	}
	return &m, nil
}

func recordKey(id string) string {
	return "msg:" + id
}
