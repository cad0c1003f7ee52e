package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileHourlyEarnings(t *testing.T) {
	t.Parallel()

	p := ProfileSnapshot{TapsRecoverPerSec: 3, EarnPassivePerHour: 1500}
	assert.Equal(t, 3600*3+1500.0, p.HourlyEarnings())
}

func TestProfileBoostByIDMissingIsZero(t *testing.T) {
	t.Parallel()

	p := ProfileSnapshot{}
	assert.Equal(t, BoostState{}, p.BoostByID(EnergyBoostID))

	p.Boosts = map[string]BoostState{EnergyBoostID: {Level: 2, LastUpgradeAt: 123}}
	assert.Equal(t, BoostState{Level: 2, LastUpgradeAt: 123}, p.BoostByID(EnergyBoostID))
}

func TestDailyTaskIsLastListEntry(t *testing.T) {
	t.Parallel()

	_, ok := DailyTask(nil)
	require.False(t, ok)

	daily, ok := DailyTask([]Task{
		{ID: "subscribe_channel", IsCompleted: true},
		{ID: "streak_days", Days: 3, RewardsByDays: []DayReward{{100}, {200}, {300}}},
	})
	require.True(t, ok)
	assert.Equal(t, "streak_days", daily.ID)
	assert.Equal(t, 300, daily.TodayReward())
}

func TestTaskTodayRewardOutOfRange(t *testing.T) {
	t.Parallel()

	assert.Zero(t, Task{Days: 0, RewardsByDays: []DayReward{{100}}}.TodayReward())
	assert.Zero(t, Task{Days: 2, RewardsByDays: []DayReward{{100}}}.TodayReward())
}

func TestAccountValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		account Account
		wantErr string
	}{
		{
			name:    "valid",
			account: Account{ID: "main", WebView: WebViewSource{Command: "tg-webview"}},
		},
		{
			name:    "missing id",
			account: Account{WebView: WebViewSource{Command: "tg-webview"}},
			wantErr: "id is required",
		},
		{
			name:    "missing web-view command",
			account: Account{ID: "main"},
			wantErr: "web-view command is required",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.account.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestAccountSessionName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Main", Account{ID: "acc-1", Name: "Main"}.SessionName())
	assert.Equal(t, "acc-1", Account{ID: "acc-1"}.SessionName())
}
