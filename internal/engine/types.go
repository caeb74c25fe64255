package engine

import (
	"errors"

	"github.com/MJE43/roulette-odds-go/internal/areas"
	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

var ErrInvalidStake = errors.New("stake must be a positive finite amount")

// MultipleProbability replaces the win probability of a combined result. Bets on
// overlapping areas share one spin, so no single number describes them.
const MultipleProbability = "Multiple"

// PlacedBet is one wager on an area. The engine never modifies it.
type PlacedBet struct {
	ID     string  `json:"id"`
	AreaID string  `json:"areaId"`
	Amount float64 `json:"amount"`
}

// AreaLookup resolves area ids for the active wheel. *areas.Catalog implements it.
type AreaLookup interface {
	Lookup(id string) (areas.BetArea, error)
}

// Result is the risk/reward summary of one bet, or of several bets combined.
type Result struct {
	BetType               string   `json:"betType"`
	Stake                 float64  `json:"stake"`
	WinProbability        string   `json:"winProbability"`        // "12/37", or "Multiple" when combined
	WinProbabilityPercent *float64 `json:"winProbabilityPercent"` // nil when combined
	Payout                float64  `json:"payout"`
	ExpectedValue         float64  `json:"expectedValue"`
	HouseEdge             float64  `json:"houseEdge"`
	RiskRewardRatio       string   `json:"riskRewardRatio"`
	WorstCase             float64  `json:"worstCase"`
	// BestCase of a combined result is the sum of each area's best case. Those wins
	// generally cannot all happen on one spin; see Distribution.MaxWin for the
	// jointly achievable maximum.
	BestCase  float64  `json:"bestCase"`
	Combined  bool     `json:"combined"`
	Breakdown []Result `json:"breakdown,omitempty"`
}

// Outcome is the net profit of a set of bets for one spin result.
type Outcome struct {
	Slot wheel.Slot `json:"slot"`
	Net  float64    `json:"net"`
}

// Distribution is the exact joint outcome of a set of bets over every slot.
type Distribution struct {
	TotalStake           float64   `json:"totalStake"`
	ExpectedValue        float64   `json:"expectedValue"`
	WinProbability       float64   `json:"winProbability"`
	LoseProbability      float64   `json:"loseProbability"`
	BreakEvenProbability float64   `json:"breakEvenProbability"`
	MaxWin               float64   `json:"maxWin"`
	MaxLoss              float64   `json:"maxLoss"`
	Outcomes             []Outcome `json:"outcomes"`
}
