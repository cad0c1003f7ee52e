package domain

// ProfileSnapshot is the player's game state as last observed (the
// "clickerUser" object). It is replaced wholesale after every successful sync
// or tap call, never partially mutated.
type ProfileSnapshot struct {
	BalanceCoins       float64               `json:"balanceCoins"`
	TotalCoins         float64               `json:"totalCoins"`
	AvailableTaps      int                   `json:"availableTaps"`
	MaxTaps            int                   `json:"maxTaps"`
	EarnPerTap         int                   `json:"earnPerTap"`
	EarnPassivePerHour float64               `json:"earnPassivePerHour"`
	TapsRecoverPerSec  float64               `json:"tapsRecoverPerSec"`
	LastPassiveEarn    float64               `json:"lastPassiveEarn"`
	ExchangeID         string                `json:"exchangeId"`
	Boosts             map[string]BoostState `json:"boosts"`
}

// BoostState is the per-boost ledger the backend keeps on the profile.
type BoostState struct {
	Level         int   `json:"level"`
	LastUpgradeAt int64 `json:"lastUpgradeAt"`
}

// HourlyEarnings is the combined income rate: energy recovery valued at one
// coin per tap plus passive income.
func (p ProfileSnapshot) HourlyEarnings() float64 {
	return 3600*p.TapsRecoverPerSec + p.EarnPassivePerHour
}

// BoostByID returns the zero state when the boost has never been used.
func (p ProfileSnapshot) BoostByID(id string) BoostState {
	return p.Boosts[id]
}
