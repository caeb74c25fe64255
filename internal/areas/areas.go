package areas

import (
	"errors"
	"fmt"

	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

// Kind classifies an area for display; it never affects the odds.
type Kind string

const (
	KindInside  Kind = "inside"
	KindOutside Kind = "outside"
	KindSpecial Kind = "special"
)

// Standard payouts (profit per unit stake).
const (
	PayoutStraight = 35
	PayoutSplit    = 17
	PayoutStreet   = 11
	PayoutCorner   = 8
	PayoutTopLine  = 6
	PayoutLine     = 5
	PayoutDozen    = 2
	PayoutColumn   = 2
	PayoutEven     = 1
)

var (
	ErrUnknownArea = errors.New("unknown bet area")
	ErrEmptyWheel  = errors.New("wheel has no slots")
)

// BetArea is a static betting region of the table.
type BetArea struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Covered []wheel.Slot `json:"covered"`
	Payout  int          `json:"payout"`
	Kind    Kind         `json:"kind"`
}

// Covers reports whether a spin landing on s wins this area.
func (a BetArea) Covers(s wheel.Slot) bool {
	for _, c := range a.Covered {
		if c == s {
			return true
		}
	}
	return false
}

// rows is the 12x3 layout: {1,2,3}, {4,5,6}, ... {34,35,36}.
func rows() [][3]wheel.Slot {
	out := make([][3]wheel.Slot, 12)
	for r := range out {
		base := wheel.Slot(r*3 + 1)
		out[r] = [3]wheel.Slot{base, base + 1, base + 2}
	}
	return out
}

// BuildBetAreas derives every bettable area for w. The result is deterministic and
// contains no duplicate ids. Zeros only appear in their own straight and the top line.
func BuildBetAreas(w wheel.Type) ([]BetArea, error) {
	slots := wheel.Slots(w)
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyWheel, w)
	}

	var numbers []wheel.Slot
	for _, s := range slots {
		if s.IsNumber() {
			numbers = append(numbers, s)
		}
	}

	areas := make([]BetArea, 0, 160)

	for _, s := range numbers {
		areas = append(areas, straight(s))
	}
	areas = append(areas, straight(wheel.Zero))
	if w == wheel.American {
		areas = append(areas, straight(wheel.DoubleZero))
	}

	grid := rows()
	var splits, corners, lines []BetArea
	for r, row := range grid {
		splits = append(splits, pair(row[0], row[1]), pair(row[1], row[2]))
		if r == len(grid)-1 {
			continue
		}

		next := grid[r+1]
		for c := 0; c < 3; c++ {
			splits = append(splits, pair(row[c], next[c]))
		}
		corners = append(corners,
			corner(row[0], row[1], next[0], next[1]),
			corner(row[1], row[2], next[1], next[2]),
		)
		lines = append(lines, BetArea{
			ID:      fmt.Sprintf("line-%s-%s", row[0], next[2]),
			Label:   fmt.Sprintf("%s-%s (line)", row[0], next[2]),
			Covered: []wheel.Slot{row[0], row[1], row[2], next[0], next[1], next[2]},
			Payout:  PayoutLine,
			Kind:    KindInside,
		})
	}

	areas = append(areas, splits...)
	for i, row := range grid {
		areas = append(areas, BetArea{
			ID:      fmt.Sprintf("street-%d", i),
			Label:   fmt.Sprintf("%s-%s (row)", row[0], row[2]),
			Covered: []wheel.Slot{row[0], row[1], row[2]},
			Payout:  PayoutStreet,
			Kind:    KindInside,
		})
	}
	areas = append(areas, corners...)
	areas = append(areas, lines...)

	var columns [3][]wheel.Slot
	for _, n := range numbers {
		columns[(int(n)-1)%3] = append(columns[(int(n)-1)%3], n)
	}
	for i, col := range columns {
		areas = append(areas, BetArea{
			ID:      fmt.Sprintf("col-%d", i+1),
			Label:   fmt.Sprintf("Column %d", i+1),
			Covered: col,
			Payout:  PayoutColumn,
			Kind:    KindOutside,
		})
	}

	dozenLabels := [3]string{"1st 12", "2nd 12", "3rd 12"}
	for i, label := range dozenLabels {
		areas = append(areas, BetArea{
			ID:      fmt.Sprintf("dozen-%d", i+1),
			Label:   label,
			Covered: filter(numbers, func(n wheel.Slot) bool { return int(n) > i*12 && int(n) <= (i+1)*12 }),
			Payout:  PayoutDozen,
			Kind:    KindOutside,
		})
	}

	areas = append(areas,
		evenMoney("red", "Red", numbers, func(n wheel.Slot) bool { return wheel.ColorOf(n) == wheel.Red }),
		evenMoney("black", "Black", numbers, func(n wheel.Slot) bool { return wheel.ColorOf(n) == wheel.Black }),
		evenMoney("even", "Even", numbers, func(n wheel.Slot) bool { return n%2 == 0 }),
		evenMoney("odd", "Odd", numbers, func(n wheel.Slot) bool { return n%2 == 1 }),
		evenMoney("low", "1-18", numbers, func(n wheel.Slot) bool { return n <= 18 }),
		evenMoney("high", "19-36", numbers, func(n wheel.Slot) bool { return n >= 19 }),
	)

	if w == wheel.American {
		areas = append(areas, BetArea{
			ID:      "topline",
			Label:   "0-00-1-2-3 (Top Line)",
			Covered: []wheel.Slot{wheel.Zero, wheel.DoubleZero, 1, 2, 3},
			Payout:  PayoutTopLine,
			Kind:    KindSpecial,
		})
	}

	return areas, nil
}

func straight(s wheel.Slot) BetArea {
	return BetArea{
		ID:      "straight-" + s.String(),
		Label:   s.String(),
		Covered: []wheel.Slot{s},
		Payout:  PayoutStraight,
		Kind:    KindInside,
	}
}

func pair(a, b wheel.Slot) BetArea {
	return BetArea{
		ID:      fmt.Sprintf("split-%s-%s", a, b),
		Label:   fmt.Sprintf("%s-%s", a, b),
		Covered: []wheel.Slot{a, b},
		Payout:  PayoutSplit,
		Kind:    KindInside,
	}
}

func corner(a, b, c, d wheel.Slot) BetArea {
	label := fmt.Sprintf("%s-%s-%s-%s", a, b, c, d)
	return BetArea{
		ID:      "corner-" + label,
		Label:   label,
		Covered: []wheel.Slot{a, b, c, d},
		Payout:  PayoutCorner,
		Kind:    KindInside,
	}
}

func evenMoney(id, label string, numbers []wheel.Slot, keep func(wheel.Slot) bool) BetArea {
	return BetArea{
		ID:      id,
		Label:   label,
		Covered: filter(numbers, keep),
		Payout:  PayoutEven,
		Kind:    KindOutside,
	}
}

func filter(numbers []wheel.Slot, keep func(wheel.Slot) bool) []wheel.Slot {
	var out []wheel.Slot
	for _, n := range numbers {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
