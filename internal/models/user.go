package models

import "time"

// Plan идентификатор тарифного плана подписки
type Plan string

const (
	PlanFree    Plan = "free"
	PlanWeekly  Plan = "weekly"
	PlanMonthly Plan = "monthly"
	PlanYearly  Plan = "yearly"
)

// Valid reports whether p is one of the known plans
func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanWeekly, PlanMonthly, PlanYearly:
		return true
	}
	return false
}

// Subscription состояние подписки пользователя и учёт минут перевода
type Subscription struct {
	Plan      Plan      `json:"plan"`
	DeviceID  string    `json:"deviceId,omitempty"`
	Usage     float64   `json:"usage"`              // минуты за текущий период
	LastReset time.Time `json:"lastReset,omitzero"` // начало текущего периода
	StartDate time.Time `json:"startDate,omitzero"` // момент оформления плана
}

// User представляет зарегистрированного пользователя
type User struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"` // lowercase, trimmed
	PhoneNumber  string        `json:"phoneNumber"`
	Password     string        `json:"password"` // argon2id hash
	CreatedAt    time.Time     `json:"createdAt"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// Clone returns a deep copy of u
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Subscription != nil {
		sub := *u.Subscription
		c.Subscription = &sub
	}
	return &c
}

// FullName returns "first last"
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
