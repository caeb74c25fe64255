package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/MJE43/roulette-odds-go/internal/areas"
	"github.com/MJE43/roulette-odds-go/internal/engine"
	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

func main() {
	wheelName := flag.String("wheel", "european", "wheel type: european or american")
	kind := flag.String("kind", "", "only show areas of this kind (inside, outside, special)")
	stake := flag.Float64("stake", 1, "stake per area")
	slot := flag.String("slot", "", "only show areas that pay when this slot hits")
	bets := flag.String("bets", "", "combine bets instead, e.g. red:10,dozen-1:10")
	flag.Parse()

	t, err := wheel.ParseType(*wheelName)
	if err != nil {
		fail(err)
	}
	catalog, err := areas.For(t)
	if err != nil {
		fail(err)
	}

	if *bets != "" {
		if err := printCombined(catalog, *bets); err != nil {
			fail(err)
		}
		return
	}

	list := catalog.Areas()
	if *kind != "" {
		list = catalog.ByKind(areas.Kind(strings.ToLower(*kind)))
	}
	if *slot != "" {
		s, err := wheel.ParseSlot(*slot)
		if err != nil {
			fail(err)
		}
		var hits []areas.BetArea
		for _, a := range list {
			if a.Covers(s) {
				hits = append(hits, a)
			}
		}
		list = hits
	}

	fmt.Printf("=== %s wheel: %d slots, %d areas ===\n", t, catalog.SlotCount(), len(list))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tPAYS\tP(WIN)\t%\tEV\tHOUSE EDGE")
	for _, a := range list {
		res, err := engine.Evaluate(engine.PlacedBet{AreaID: a.ID, Amount: *stake}, a, catalog.SlotCount())
		if err != nil {
			fail(err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.4f\t%+.6f\t%.4f%%\n",
			a.ID, a.Label, res.RiskRewardRatio, res.WinProbability,
			*res.WinProbabilityPercent, res.ExpectedValue, res.HouseEdge*100)
	}
	tw.Flush()
}

func printCombined(catalog *areas.Catalog, list string) error {
	var placed []engine.PlacedBet
	for _, part := range strings.Split(list, ",") {
		id, amount, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return fmt.Errorf("bet %q: want area:amount", part)
		}
		v, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return fmt.Errorf("bet %q: %w", part, err)
		}
		bet, err := engine.NewPlacedBet(id, v)
		if err != nil {
			return fmt.Errorf("bet %q: %w", part, err)
		}
		placed = append(placed, bet)
	}

	res, err := engine.Aggregate(placed, catalog, catalog.SlotCount())
	if err != nil {
		return err
	}
	dist, err := engine.Distribute(placed, catalog, catalog.Slots())
	if err != nil {
		return err
	}

	fmt.Printf("=== %s on %s wheel ===\n", res.BetType, catalog.Wheel())
	fmt.Printf("Stake:          %.2f\n", res.Stake)
	fmt.Printf("Expected value: %+.6f\n", res.ExpectedValue)
	fmt.Printf("House edge:     %.4f%%\n", res.HouseEdge*100)
	fmt.Printf("Best case:      %+.2f (sum of legs)\n", res.BestCase)
	fmt.Printf("Worst case:     %+.2f\n", res.WorstCase)
	for _, leg := range res.Breakdown {
		fmt.Printf("  %s: %.2f (%s)\n", leg.BetType, leg.Stake, leg.RiskRewardRatio)
	}

	fmt.Println("\n=== Joint outcome ===")
	fmt.Printf("P(net win):     %.4f\n", dist.WinProbability)
	fmt.Printf("P(break even):  %.4f\n", dist.BreakEvenProbability)
	fmt.Printf("P(net loss):    %.4f\n", dist.LoseProbability)
	fmt.Printf("Max win:        %+.2f\n", dist.MaxWin)
	fmt.Printf("Max loss:       %+.2f\n", dist.MaxLoss)
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
