package domain

// Task is one entry of the backend task list. The daily streak task is the
// last element of the list.
type Task struct {
	ID            string      `json:"id"`
	IsCompleted   bool        `json:"isCompleted"`
	Days          int         `json:"days"`
	RewardsByDays []DayReward `json:"rewardsByDays"`
}

type DayReward struct {
	RewardCoins int `json:"rewardCoins"`
}

// TodayReward is the coins granted for the current streak day, zero when the
// reward table does not cover it.
func (t Task) TodayReward() int {
	if t.Days < 1 || t.Days > len(t.RewardsByDays) {
		return 0
	}
	return t.RewardsByDays[t.Days-1].RewardCoins
}

// DailyTask returns the streak task, which the backend keeps as the last
// element of the task list.
func DailyTask(tasks []Task) (Task, bool) {
	if len(tasks) == 0 {
		return Task{}, false
	}
	return tasks[len(tasks)-1], true
}
