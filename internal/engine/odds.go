package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/MJE43/roulette-odds-go/internal/areas"
)

// Fraction is a probability reduced to lowest terms.
type Fraction struct {
	Numerator   int     `json:"numerator"`
	Denominator int     `json:"denominator"`
	Decimal     float64 `json:"decimal"`
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ExactProbability reduces winning/total with the Euclidean algorithm. Decimal is
// the unreduced quotient.
func ExactProbability(winning, total int) (Fraction, error) {
	if total <= 0 {
		return Fraction{}, fmt.Errorf("%w: total slots %d", areas.ErrEmptyWheel, total)
	}
	if winning < 0 || winning > total {
		return Fraction{}, fmt.Errorf("winning count %d out of range for %d slots", winning, total)
	}

	d := gcd(winning, total)
	return Fraction{
		Numerator:   winning / d,
		Denominator: total / d,
		Decimal:     float64(winning) / float64(total),
	}, nil
}

func validateStake(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidStake, amount)
	}
	return nil
}

// NewPlacedBet validates the stake and assigns a fresh id.
func NewPlacedBet(areaID string, amount float64) (PlacedBet, error) {
	if err := validateStake(amount); err != nil {
		return PlacedBet{}, err
	}
	return PlacedBet{
		ID:     uuid.NewString(),
		AreaID: areaID,
		Amount: amount,
	}, nil
}

// Evaluate computes the exact odds of a single bet on area for a wheel of
// totalSlots equally likely outcomes.
//
//	EV = stake × (p × payout − (1 − p))
//
// House edge is −EV/stake; it is reported as computed, even if negative.
func Evaluate(bet PlacedBet, area areas.BetArea, totalSlots int) (Result, error) {
	if err := validateStake(bet.Amount); err != nil {
		return Result{}, err
	}
	if len(area.Covered) == 0 {
		return Result{}, fmt.Errorf("bet area %q covers no slots", area.ID)
	}
	if area.Payout <= 0 {
		return Result{}, fmt.Errorf("bet area %q has non-positive payout %d", area.ID, area.Payout)
	}

	prob, err := ExactProbability(len(area.Covered), totalSlots)
	if err != nil {
		return Result{}, err
	}

	stake := bet.Amount
	payout := float64(area.Payout)
	winProb := prob.Decimal
	loseProb := 1 - winProb

	ev := stake * (winProb*payout - loseProb)
	percent := winProb * 100

	return Result{
		BetType:               area.Label,
		Stake:                 stake,
		WinProbability:        prob.String(),
		WinProbabilityPercent: &percent,
		Payout:                payout,
		ExpectedValue:         ev,
		HouseEdge:             -ev / stake,
		RiskRewardRatio:       fmt.Sprintf("1:%d", area.Payout),
		WorstCase:             -stake,
		BestCase:              payout * stake,
	}, nil
}
