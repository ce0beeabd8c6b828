// Package history keeps the journal of completed translations.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/transconnection/internal/client/storage"
	"github.com/iudanet/transconnection/internal/models"
)

// Log хранит записи под ключом translation_history, новые первыми.
// Запись журнала best-effort: ошибки хранилища логируются и не
// прерывают перевод.
type Log struct {
	store  storage.KeyValueStore
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

// New creates a history log
func New(store storage.KeyValueStore, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (l *Log) load(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := l.store.Get(ctx, storage.KeyTranslationHistory, &entries)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []models.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

// Add prepends entry, filling in id, owner and timestamp when missing
func (l *Log) Add(ctx context.Context, entry models.HistoryEntry) models.HistoryEntry {
	if entry.ID == "" {
		if id, err := uuid.NewV7(); err == nil {
			entry.ID = id.String()
		} else {
			entry.ID = fmt.Sprintf("%d", l.now().UnixNano())
		}
	}
	if entry.UserID == "" {
		entry.UserID = models.GuestUserID
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("history not saved", "error", err)
		return entry
	}

	entries = append([]models.HistoryEntry{entry}, entries...)
	if err := l.store.Set(ctx, storage.KeyTranslationHistory, entries); err != nil {
		l.logger.Warn("history not saved", "error", err)
	}

	return entry
}

// ListForUser returns the user's entries newest first; an empty userID
// returns every entry.
func (l *Log) ListForUser(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	return l.Filter(ctx, userID, "")
}

// Filter narrows ListForUser to one translation type; "" or "all"
// keeps every type.
func (l *Log) Filter(ctx context.Context, userID string, typ models.TranslationType) ([]models.HistoryEntry, error) {
	entries, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if userID != "" && e.UserID != userID {
			continue
		}
		if typ != "" && typ != "all" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Clear removes the whole journal
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Remove(ctx, storage.KeyTranslationHistory); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
