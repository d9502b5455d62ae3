package session

import (
	"context"
	"sync"
	"time"

	"memberportal/internal/model"
)

// MemoryStore is an in-memory implementation of the Store interface for testing purposes.
type MemoryStore struct {
	mu       sync.Mutex
	records  map[string]memoryRecord
	FailWith error // When set, every call fails with it
}

type memoryRecord struct {
	sess     model.Session
	deadline time.Time
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]memoryRecord),
	}
}

// Save is an in-memory implementation of the Save method.
func (ms *MemoryStore) Save(ctx context.Context, sess *model.Session, ttl time.Duration) error {
	if ms.FailWith != nil {
		return ms.FailWith
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.records[sess.Token] = memoryRecord{
		sess:     *sess,
		deadline: time.Now().Add(ttl),
	}
	return nil
}

// Get is an in-memory implementation of the Get method. Records past their
// ttl are treated as missing, mirroring the Redis behavior.
func (ms *MemoryStore) Get(ctx context.Context, token string) (*model.Session, error) {
	if ms.FailWith != nil {
		return nil, ms.FailWith
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	record, ok := ms.records[token]
	if !ok || time.Now().After(record.deadline) {
		return nil, nil
	}

	sess := record.sess
	return &sess, nil
}

// Delete is an in-memory implementation of the Delete method.
func (ms *MemoryStore) Delete(ctx context.Context, token string) error {
	if ms.FailWith != nil {
		return ms.FailWith
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.records, token)
	return nil
}
