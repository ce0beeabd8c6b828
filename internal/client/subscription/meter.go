// Package subscription tracks subscription plans and weekly usage minutes.
package subscription

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/transconnection/internal/client/users"
	"github.com/iudanet/transconnection/internal/models"
)

// Period длина расчётного периода; использование обнуляется лениво
const Period = 7 * 24 * time.Hour

var quotas = map[models.Plan]float64{
	models.PlanFree:    30,
	models.PlanWeekly:  180,
	models.PlanMonthly: 9999,
	models.PlanYearly:  9999,
}

// QuotaFor returns the minutes allowed per period; unknown plans get the
// free quota.
func QuotaFor(plan models.Plan) float64 {
	if q, ok := quotas[plan]; ok {
		return q
	}
	return quotas[models.PlanFree]
}

// Users is the part of the user directory the meter reads and writes
type Users interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, upd users.UserUpdate) (*models.User, error)
}

// Meter учитывает минуты перевода по подписке пользователя
type Meter struct {
	users  Users
	now    func() time.Time
	logger *slog.Logger

	// сериализует чтение-изменение-запись подписки
	mu sync.Mutex
}

// Option настраивает Meter
type Option func(*Meter)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(m *Meter) { m.now = now }
}

// WithLogger задаёт логгер
func WithLogger(logger *slog.Logger) Option {
	return func(m *Meter) { m.logger = logger }
}

// NewMeter creates a meter over the user directory
func NewMeter(u Users, opts ...Option) *Meter {
	m := &Meter{
		users:  u,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

func defaultSubscription() models.Subscription {
	return models.Subscription{Plan: models.PlanFree, Usage: 0}
}

// lookup returns the user or nil when no such user exists
func (m *Meter) lookup(ctx context.Context, userID string) (*models.User, error) {
	user, err := m.users.Get(ctx, userID)
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, nil
	}
	return user, err
}

func (m *Meter) expired(sub *models.Subscription) bool {
	if sub.LastReset.IsZero() {
		return false
	}
	return m.now().Sub(sub.LastReset) >= Period
}

// SetSubscription starts plan for the user with fresh usage
func (m *Meter) SetSubscription(ctx context.Context, userID string, plan models.Plan, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	_, err := m.users.Update(ctx, userID, users.UserUpdate{
		Subscription: &models.Subscription{
			Plan:      plan,
			DeviceID:  deviceID,
			Usage:     0,
			LastReset: now,
			StartDate: now,
		},
	})
	if err != nil {
		return err
	}

	m.logger.Info("subscription set", "user_id", userID, "plan", plan)
	return nil
}

// GetSubscription returns the stored state or {free, 0}
func (m *Meter) GetSubscription(ctx context.Context, userID string) (models.Subscription, error) {
	user, err := m.lookup(ctx, userID)
	if err != nil {
		return models.Subscription{}, err
	}
	if user == nil || user.Subscription == nil {
		return defaultSubscription(), nil
	}
	return *user.Subscription, nil
}

// CheckDevice reports whether deviceID is the device bound to the
// subscription. No subscription or no bound device never matches.
func (m *Meter) CheckDevice(ctx context.Context, userID, deviceID string) (bool, error) {
	sub, err := m.GetSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.DeviceID != "" && sub.DeviceID == deviceID, nil
}

// GetUsage returns the minutes used in the current period, resetting
// the counter first if the period is over.
func (m *Meter) GetUsage(ctx context.Context, userID string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.lookup(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil || user.Subscription == nil {
		return 0, nil
	}

	if m.expired(user.Subscription) {
		if err := m.resetLocked(ctx, user); err != nil {
			return 0, err
		}
		return 0, nil
	}

	return user.Subscription.Usage, nil
}

// UpdateUsage adds minutes to the current period. Unknown users are ignored.
func (m *Meter) UpdateUsage(ctx context.Context, userID string, minutes float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.lookup(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		m.logger.Debug("usage update for unknown user ignored", "user_id", userID)
		return nil
	}

	now := m.now().UTC()

	var sub models.Subscription
	if user.Subscription != nil {
		sub = *user.Subscription
	} else {
		sub = models.Subscription{Plan: models.PlanFree, Usage: 0, LastReset: now}
	}

	if m.expired(&sub) {
		sub.Usage = 0
		sub.LastReset = now
	}
	sub.Usage += minutes

	_, err = m.users.Update(ctx, userID, users.UserUpdate{Subscription: &sub})
	return err
}

// ResetWeeklyUsage zeroes usage and starts a new period now
func (m *Meter) ResetWeeklyUsage(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.lookup(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	return m.resetLocked(ctx, user)
}

func (m *Meter) resetLocked(ctx context.Context, user *models.User) error {
	sub := models.Subscription{}
	if user.Subscription != nil {
		sub = *user.Subscription
	}
	sub.Usage = 0
	sub.LastReset = m.now().UTC()

	if _, err := m.users.Update(ctx, user.ID, users.UserUpdate{Subscription: &sub}); err != nil {
		return err
	}

	m.logger.Debug("weekly usage reset", "user_id", user.ID)
	return nil
}

// MayProceed reports whether the user is still under the plan quota
func (m *Meter) MayProceed(ctx context.Context, userID string) (bool, error) {
	sub, err := m.GetSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	usage, err := m.GetUsage(ctx, userID)
	if err != nil {
		return false, err
	}
	return usage < QuotaFor(sub.Plan), nil
}

// Remaining returns the minutes left in the current period
func (m *Meter) Remaining(ctx context.Context, userID string) (float64, error) {
	sub, err := m.GetSubscription(ctx, userID)
	if err != nil {
		return 0, err
	}
	usage, err := m.GetUsage(ctx, userID)
	if err != nil {
		return 0, err
	}
	return max(0, QuotaFor(sub.Plan)-usage), nil
}
