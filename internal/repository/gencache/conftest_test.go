package gencache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pawmatch/pawmatch/internal/db"
)

type mockGenerator struct {
	response string
	err      error
	calls    int
}

func (m *mockGenerator) Generate(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.response, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedGenerator(t *testing.T, inner *mockGenerator) (*CachedGenerator, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cg := New(inner, ms, "model|300|0.70", 5*time.Minute, nil, zap.NewNop())
	return cg, ms
}
