// Package device supplies the identifier a subscription is bound to.
package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/transconnection/internal/client/storage"
)

// Provider returns the identifier of this device
type Provider interface {
	DeviceID(ctx context.Context) (string, error)
}

// StoredProvider генерирует UUID при первом обращении и хранит его под
// ключом device_id. Непустой override возвращается как есть.
type StoredProvider struct {
	store    storage.KeyValueStore
	override string

	mu sync.Mutex
}

var _ Provider = (*StoredProvider)(nil)

// NewStoredProvider creates a provider backed by store
func NewStoredProvider(store storage.KeyValueStore, override string) *StoredProvider {
	return &StoredProvider{store: store, override: strings.TrimSpace(override)}
}

// DeviceID implements Provider
func (p *StoredProvider) DeviceID(ctx context.Context) (string, error) {
	if p.override != "" {
		return p.override, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var id string
	err := p.store.Get(ctx, storage.KeyDeviceID, &id)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}

	id = uuid.NewString()
	if err := p.store.Set(ctx, storage.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("failed to save device id: %w", err)
	}

	return id, nil
}
