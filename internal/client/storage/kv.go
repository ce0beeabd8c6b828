package storage

import (
	"context"
)

// Well-known keys of the client store.
const (
	KeyUsers              = "users"
	KeyCurrentUser        = "currentUser"
	KeyThemePreference    = "theme_preference"
	KeyTranslationHistory = "translation_history"
	KeyDeviceID           = "device_id"
)

// KeyValueStore is the durable string-keyed store every client component
// persists through. Values are JSON documents; Get decodes into dst.
//
// Implementations wrap I/O errors with ErrStorageFailure and never retry.
type KeyValueStore interface {
	// Get decodes the value stored under key into dst.
	// Returns ErrKeyNotFound if nothing is stored under key.
	Get(ctx context.Context, key string, dst any) error

	// Set replaces the value stored under key
	Set(ctx context.Context, key string, value any) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the underlying database
	Close() error
}
