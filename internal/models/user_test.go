package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_CloneIsDeep(t *testing.T) {
	u := &User{
		ID:        "id-1",
		FirstName: "Ana",
		LastName:  "Lopez",
		Subscription: &Subscription{
			Plan:      PlanWeekly,
			Usage:     12,
			LastReset: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	c := u.Clone()
	c.Subscription.Usage = 99
	c.FirstName = "Other"

	assert.Equal(t, 12.0, u.Subscription.Usage)
	assert.Equal(t, "Ana", u.FirstName)
	assert.Nil(t, (*User)(nil).Clone())
}

func TestPlan_Valid(t *testing.T) {
	for _, p := range []Plan{PlanFree, PlanWeekly, PlanMonthly, PlanYearly} {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Plan("lifetime").Valid())
	assert.False(t, Plan("").Valid())
}
