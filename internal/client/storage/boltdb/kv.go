package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/transconnection/internal/client/storage"
)

var _ storage.KeyValueStore = (*Storage)(nil)

var errClosed = fmt.Errorf("%w: %w", storage.ErrStorageFailure, storage.ErrStorageClosed)

// Get decodes the JSON value stored under key into dst
func (s *Storage) Get(ctx context.Context, key string, dst any) error {
	if s.db == nil {
		return errClosed
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}

		raw := bucket.Get([]byte(key))
		if raw == nil {
			return storage.ErrKeyNotFound
		}

		// bbolt отдаёт срез, валидный только внутри транзакции
		data = append([]byte(nil), raw...)
		return nil
	})
	if errors.Is(err, storage.ErrKeyNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: read %q: %w", storage.ErrStorageFailure, key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: decode %q: %w", storage.ErrStorageFailure, key, err)
	}

	return nil
}

// Set stores value under key as JSON, replacing any previous value
func (s *Storage) Set(ctx context.Context, key string, value any) error {
	if s.db == nil {
		return errClosed
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}
		return bucket.Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("%w: write %q: %w", storage.ErrStorageFailure, key, err)
	}

	return nil
}

// Remove deletes key; missing keys are ignored
func (s *Storage) Remove(ctx context.Context, key string) error {
	if s.db == nil {
		return errClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: remove %q: %w", storage.ErrStorageFailure, key, err)
	}

	return nil
}
