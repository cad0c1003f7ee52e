package domain

// EnergyBoostID restores available energy to maximum. It has a daily usage
// cap (the catalog level) and its own cooldown, independent of the upgrade
// catalog.
const EnergyBoostID = "BoostFullAvailableTaps"

type Boost struct {
	ID            string `json:"id"`
	Level         int    `json:"level"`
	MaxLevel      int    `json:"maxLevel"`
	LastUpgradeAt int64  `json:"lastUpgradeAt"`
}

func (b Boost) HasHeadroom() bool {
	return b.Level < b.MaxLevel
}
