package storage

import (
	"context"
	"sync"
	"time"

	"github.com/pudottapommin/ephemeral-messages-service/pkg/messages"
)

// memoryBackend is the volatile backend: a process-local table that does
// not survive restarts. Useful for development and single-node setups
// where losing undelivered messages on redeploy is acceptable.
type memoryBackend struct {
	mu      sync.RWMutex
	records map[string]messages.Message
}

func NewMemory() Backend {
	return &memoryBackend{records: make(map[string]messages.Message)}
}

func (b *memoryBackend) Insert(_ context.Context, m messages.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.records[m.ID]; ok {
		return ErrRecordExists
	}
	m.Payload = append([]byte(nil), m.Payload...)
	b.records[m.ID] = m
	return nil
}

func (b *memoryBackend) Get(_ context.Context, id string) (*messages.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	m.Payload = append([]byte(nil), m.Payload...)
	return &m, nil
}

func (b *memoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.records[id]; !ok {
		return ErrRecordNotFound
	}
	delete(b.records, id)
	return nil
}

// FetchDelete removes and returns the record under a single critical
// section, making it the burn arbiter for concurrent readers.
func (b *memoryBackend) FetchDelete(_ context.Context, id string) (*messages.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	delete(b.records, id)
	return &m, nil
}

func (b *memoryBackend) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var count int
	for id, m := range b.records {
		if messages.Classify(&m, now) == messages.TimeExpired {
			delete(b.records, id)
			count++
		}
	}
	return count, nil
}

func (b *memoryBackend) Ping(_ context.Context) error {
	return nil
}
