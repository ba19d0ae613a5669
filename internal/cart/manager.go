package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
)

// Manager hands out one Store per storage key. Sessions carry their key in a
// cookie; absent a cookie everything shares the fixed default key, exactly
// like the original single-browser cart.
type Manager struct {
	repo       Repository
	logg       *logger.Logger
	defaultKey string

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager builds a store manager around a repository.
func NewManager(repo Repository, logg *logger.Logger, defaultKey string) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("cart repository required")
	}
	if strings.TrimSpace(defaultKey) == "" {
		return nil, errors.New("default cart storage key required")
	}
	return &Manager{
		repo:       repo,
		logg:       logg,
		defaultKey: defaultKey,
		stores:     map[string]*Store{},
	}, nil
}

// DefaultKey returns the fixed storage key used when a session has none.
func (m *Manager) DefaultKey() string {
	return m.defaultKey
}

// Store returns the cart store for the given key, loading persisted state on
// first use. An empty key falls back to the default key.
func (m *Manager) Store(ctx context.Context, storageKey string) (*Store, error) {
	storageKey = strings.TrimSpace(storageKey)
	if storageKey == "" {
		storageKey = m.defaultKey
	}

	m.mu.Lock()
	store, ok := m.stores[storageKey]
	m.mu.Unlock()
	if ok {
		return store, nil
	}

	store, err := NewStore(m.repo, m.logg, storageKey)
	if err != nil {
		return nil, err
	}
	store.Load(ctx)

	m.mu.Lock()
	if existing, ok := m.stores[storageKey]; ok {
		store = existing
	} else {
		m.stores[storageKey] = store
	}
	m.mu.Unlock()

	return store, nil
}
