package domain

import "math"

// Upgrade is one entry of the purchasable catalog. Entries are fetched fresh
// for every planning pass and never cached across rounds.
type Upgrade struct {
	ID                 string  `json:"id"`
	Price              float64 `json:"price"`
	ProfitPerHourDelta float64 `json:"profitPerHourDelta"`
	Level              int     `json:"level"`
	IsAvailable        bool    `json:"isAvailable"`
	IsExpired          bool    `json:"isExpired"`
	CooldownSeconds    int     `json:"cooldownSeconds"`
}

// Ratio ranks an upgrade by hourly profit per coin spent. A zero profit delta
// ranks below everything, so it can never be selected and divide a return
// period by zero. A free upgrade with real profit ranks above everything.
func (u Upgrade) Ratio() float64 {
	if u.ProfitPerHourDelta == 0 {
		return math.Inf(-1)
	}
	if u.Price == 0 {
		return math.Inf(1)
	}
	return u.ProfitPerHourDelta / u.Price
}

// ReturnPeriodHours is the amortization time of the upgrade.
func (u Upgrade) ReturnPeriodHours() float64 {
	if u.ProfitPerHourDelta == 0 {
		return math.Inf(1)
	}
	return u.Price / u.ProfitPerHourDelta
}

func (u Upgrade) Purchasable(maxLevel int) bool {
	return u.IsAvailable && !u.IsExpired && u.Level <= maxLevel
}
