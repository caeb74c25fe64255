package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/MJE43/roulette-odds-go/internal/areas"
	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

// stakeGroup is the combined stake on one area.
type stakeGroup struct {
	area  areas.BetArea
	stake decimal.Decimal
}

// groupByArea sums stakes per area id, keeping first-seen order. Any invalid stake or
// unknown area fails the whole group; nothing is silently dropped.
func groupByArea(bets []PlacedBet, lookup AreaLookup) ([]stakeGroup, error) {
	if lookup == nil {
		return nil, errors.New("area lookup is required")
	}

	index := make(map[string]int, len(bets))
	var groups []stakeGroup
	for _, bet := range bets {
		if err := validateStake(bet.Amount); err != nil {
			return nil, fmt.Errorf("bet %q: %w", bet.ID, err)
		}

		if i, ok := index[bet.AreaID]; ok {
			groups[i].stake = groups[i].stake.Add(decimal.NewFromFloat(bet.Amount))
			continue
		}

		area, err := lookup.Lookup(bet.AreaID)
		if err != nil {
			return nil, fmt.Errorf("bet %q: %w", bet.ID, err)
		}
		index[bet.AreaID] = len(groups)
		groups = append(groups, stakeGroup{area: area, stake: decimal.NewFromFloat(bet.Amount)})
	}
	return groups, nil
}

// Aggregate combines every bet into one result. It returns nil for an empty list.
//
// Bets on the same area collapse into one stake; a single area yields exactly the
// Evaluate result for that stake. For several areas the expected value is the sum of
// per-area expected values (EV is linear even though the wins are correlated), the
// worst case is losing every stake, and the win probability is MultipleProbability.
func Aggregate(bets []PlacedBet, lookup AreaLookup, totalSlots int) (*Result, error) {
	if len(bets) == 0 {
		return nil, nil
	}

	groups, err := groupByArea(bets, lookup)
	if err != nil {
		return nil, err
	}

	if len(groups) == 1 {
		g := groups[0]
		res, err := Evaluate(PlacedBet{AreaID: g.area.ID, Amount: g.stake.InexactFloat64()}, g.area, totalSlots)
		if err != nil {
			return nil, err
		}
		return &res, nil
	}

	totalStake := decimal.Zero
	var totalEV, bestCase float64
	legs := make([]Result, 0, len(groups))
	for _, g := range groups {
		leg, err := Evaluate(PlacedBet{AreaID: g.area.ID, Amount: g.stake.InexactFloat64()}, g.area, totalSlots)
		if err != nil {
			return nil, err
		}
		totalStake = totalStake.Add(g.stake)
		totalEV += leg.ExpectedValue
		bestCase += leg.BestCase
		legs = append(legs, leg)
	}

	stake := totalStake.InexactFloat64()
	payout := bestCase / stake

	return &Result{
		BetType:         fmt.Sprintf("%d Combined Bets", len(groups)),
		Stake:           stake,
		WinProbability:  MultipleProbability,
		Payout:          payout,
		ExpectedValue:   totalEV,
		HouseEdge:       math.Abs(totalEV) / stake,
		RiskRewardRatio: fmt.Sprintf("1:%d", int(math.Round(payout))),
		WorstCase:       -stake,
		BestCase:        bestCase,
		Combined:        true,
		Breakdown:       legs,
	}, nil
}

// Distribute enumerates every slot of the wheel and sums the net profit of all bets
// for that spin. Each slot is equally likely. It returns nil for an empty list.
func Distribute(bets []PlacedBet, lookup AreaLookup, slots []wheel.Slot) (*Distribution, error) {
	if len(bets) == 0 {
		return nil, nil
	}
	if len(slots) == 0 {
		return nil, areas.ErrEmptyWheel
	}

	groups, err := groupByArea(bets, lookup)
	if err != nil {
		return nil, err
	}

	totalStake := decimal.Zero
	for _, g := range groups {
		totalStake = totalStake.Add(g.stake)
	}

	sum := decimal.Zero
	var wins, losses, evens int
	var maxWin, maxLoss decimal.Decimal
	outcomes := make([]Outcome, 0, len(slots))
	for i, slot := range slots {
		net := decimal.Zero
		for _, g := range groups {
			if g.area.Covers(slot) {
				net = net.Add(g.stake.Mul(decimal.NewFromInt(int64(g.area.Payout))))
			} else {
				net = net.Sub(g.stake)
			}
		}

		switch net.Sign() {
		case 1:
			wins++
		case -1:
			losses++
		default:
			evens++
		}
		if i == 0 || net.GreaterThan(maxWin) {
			maxWin = net
		}
		if i == 0 || net.LessThan(maxLoss) {
			maxLoss = net
		}

		sum = sum.Add(net)
		outcomes = append(outcomes, Outcome{Slot: slot, Net: net.InexactFloat64()})
	}

	n := float64(len(slots))
	return &Distribution{
		TotalStake:           totalStake.InexactFloat64(),
		ExpectedValue:        sum.InexactFloat64() / n,
		WinProbability:       float64(wins) / n,
		LoseProbability:      float64(losses) / n,
		BreakEvenProbability: float64(evens) / n,
		MaxWin:               maxWin.InexactFloat64(),
		MaxLoss:              maxLoss.InexactFloat64(),
		Outcomes:             outcomes,
	}, nil
}
