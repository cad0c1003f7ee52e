package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgradeRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		upgrade Upgrade
		want    float64
	}{
		{
			name:    "plain ratio",
			upgrade: Upgrade{Price: 500, ProfitPerHourDelta: 50},
			want:    0.1,
		},
		{
			name:    "zero profit ranks below everything",
			upgrade: Upgrade{Price: 500, ProfitPerHourDelta: 0},
			want:    math.Inf(-1),
		},
		{
			name:    "free upgrade with profit ranks above everything",
			upgrade: Upgrade{Price: 0, ProfitPerHourDelta: 10},
			want:    math.Inf(1),
		},
		{
			name:    "free upgrade with zero profit still excluded",
			upgrade: Upgrade{Price: 0, ProfitPerHourDelta: 0},
			want:    math.Inf(-1),
		},
		{
			name:    "negative profit gives negative ratio",
			upgrade: Upgrade{Price: 100, ProfitPerHourDelta: -10},
			want:    -0.1,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.upgrade.Ratio())
		})
	}
}

func TestUpgradeReturnPeriodHours(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10.0, Upgrade{Price: 500, ProfitPerHourDelta: 50}.ReturnPeriodHours())
	assert.True(t, math.IsInf(Upgrade{Price: 500}.ReturnPeriodHours(), 1))
}

func TestUpgradePurchasable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		upgrade Upgrade
		want    bool
	}{
		{name: "available within cap", upgrade: Upgrade{IsAvailable: true, Level: 5}, want: true},
		{name: "at level cap", upgrade: Upgrade{IsAvailable: true, Level: 20}, want: true},
		{name: "above level cap", upgrade: Upgrade{IsAvailable: true, Level: 21}, want: false},
		{name: "unavailable", upgrade: Upgrade{Level: 1}, want: false},
		{name: "expired", upgrade: Upgrade{IsAvailable: true, IsExpired: true, Level: 1}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.upgrade.Purchasable(20))
		})
	}
}
