package areas

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MJE43/roulette-odds-go/internal/wheel"
	"pgregory.net/rapid"
)

// expectedCovered maps each payout to the number of slots it must cover.
var expectedCovered = map[int]int{
	PayoutStraight: 1,
	PayoutSplit:    2,
	PayoutStreet:   3,
	PayoutCorner:   4,
	PayoutTopLine:  5,
	PayoutLine:     6,
	PayoutDozen:    12,
	PayoutEven:     18,
}

func TestBuildBetAreasCounts(t *testing.T) {
	tests := []struct {
		wheel     wheel.Type
		total     int
		straights int
	}{
		{wheel.European, 151, 37},
		{wheel.American, 153, 38},
	}

	for _, tt := range tests {
		list, err := BuildBetAreas(tt.wheel)
		if err != nil {
			t.Fatalf("%s: BuildBetAreas failed: %v", tt.wheel, err)
		}
		if len(list) != tt.total {
			t.Errorf("%s: expected %d areas, got %d", tt.wheel, tt.total, len(list))
		}

		byPayout := make(map[int]int)
		for _, a := range list {
			byPayout[a.Payout]++
		}
		if byPayout[PayoutStraight] != tt.straights {
			t.Errorf("%s: expected %d straights, got %d", tt.wheel, tt.straights, byPayout[PayoutStraight])
		}
		if byPayout[PayoutSplit] != 57 {
			t.Errorf("%s: expected 57 splits, got %d", tt.wheel, byPayout[PayoutSplit])
		}
		if byPayout[PayoutStreet] != 12 {
			t.Errorf("%s: expected 12 streets, got %d", tt.wheel, byPayout[PayoutStreet])
		}
		if byPayout[PayoutCorner] != 22 {
			t.Errorf("%s: expected 22 corners, got %d", tt.wheel, byPayout[PayoutCorner])
		}
		if byPayout[PayoutLine] != 11 {
			t.Errorf("%s: expected 11 lines, got %d", tt.wheel, byPayout[PayoutLine])
		}
		if byPayout[PayoutDozen] != 6 {
			t.Errorf("%s: expected 3 dozens + 3 columns, got %d", tt.wheel, byPayout[PayoutDozen])
		}
		if byPayout[PayoutEven] != 6 {
			t.Errorf("%s: expected 6 even-money areas, got %d", tt.wheel, byPayout[PayoutEven])
		}
	}
}

func TestCoveredCardinalityMatchesPayout(t *testing.T) {
	for _, w := range wheel.Types() {
		list, err := BuildBetAreas(w)
		if err != nil {
			t.Fatalf("%s: BuildBetAreas failed: %v", w, err)
		}

		valid := make(map[wheel.Slot]bool)
		for _, s := range wheel.Slots(w) {
			valid[s] = true
		}

		ids := make(map[string]bool)
		for _, a := range list {
			if ids[a.ID] {
				t.Errorf("%s: duplicate id %s", w, a.ID)
			}
			ids[a.ID] = true

			if a.Payout <= 0 {
				t.Errorf("%s: %s has non-positive payout %d", w, a.ID, a.Payout)
			}

			size, ok := expectedCovered[a.Payout]
			if !ok {
				t.Errorf("%s: %s has unexpected payout %d", w, a.ID, a.Payout)
				continue
			}
			if len(a.Covered) != size {
				t.Errorf("%s: %s covers %d slots, payout %d requires %d", w, a.ID, len(a.Covered), a.Payout, size)
			}

			seen := make(map[wheel.Slot]bool)
			for _, s := range a.Covered {
				if !valid[s] {
					t.Errorf("%s: %s covers slot %s which is not on the wheel", w, a.ID, s)
				}
				if seen[s] {
					t.Errorf("%s: %s covers %s twice", w, a.ID, s)
				}
				seen[s] = true
			}
		}
	}
}

func TestZerosOnlyInStraightsAndTopLine(t *testing.T) {
	list, err := BuildBetAreas(wheel.American)
	if err != nil {
		t.Fatalf("BuildBetAreas failed: %v", err)
	}

	for _, a := range list {
		if a.ID == "straight-0" || a.ID == "straight-00" || a.ID == "topline" {
			continue
		}
		if a.Covers(wheel.Zero) || a.Covers(wheel.DoubleZero) {
			t.Errorf("%s must not cover a zero", a.ID)
		}
	}
}

func TestSpecificAreas(t *testing.T) {
	c, err := NewCatalog(wheel.American)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	tests := []struct {
		id      string
		covered []wheel.Slot
		payout  int
		kind    Kind
	}{
		{"straight-17", []wheel.Slot{17}, 35, KindInside},
		{"straight-00", []wheel.Slot{wheel.DoubleZero}, 35, KindInside},
		{"split-1-2", []wheel.Slot{1, 2}, 17, KindInside},
		{"split-33-36", []wheel.Slot{33, 36}, 17, KindInside},
		{"street-0", []wheel.Slot{1, 2, 3}, 11, KindInside},
		{"street-11", []wheel.Slot{34, 35, 36}, 11, KindInside},
		{"corner-2-3-5-6", []wheel.Slot{2, 3, 5, 6}, 8, KindInside},
		{"line-31-36", []wheel.Slot{31, 32, 33, 34, 35, 36}, 5, KindInside},
		{"col-3", []wheel.Slot{3, 6, 9, 12, 15, 18, 21, 24, 27, 30, 33, 36}, 2, KindOutside},
		{"dozen-2", []wheel.Slot{13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24}, 2, KindOutside},
		{"topline", []wheel.Slot{wheel.Zero, wheel.DoubleZero, 1, 2, 3}, 6, KindSpecial},
	}

	for _, tt := range tests {
		a, err := c.Lookup(tt.id)
		if err != nil {
			t.Errorf("Lookup(%s) failed: %v", tt.id, err)
			continue
		}
		if a.Payout != tt.payout || a.Kind != tt.kind {
			t.Errorf("%s: payout %d kind %s, want %d %s", tt.id, a.Payout, a.Kind, tt.payout, tt.kind)
		}
		if len(a.Covered) != len(tt.covered) {
			t.Errorf("%s: covered %v, want %v", tt.id, a.Covered, tt.covered)
			continue
		}
		for i := range tt.covered {
			if a.Covered[i] != tt.covered[i] {
				t.Errorf("%s: covered %v, want %v", tt.id, a.Covered, tt.covered)
				break
			}
		}
	}

	// Horizontal splits never wrap across rows.
	if _, err := c.Lookup("split-3-4"); !errors.Is(err, ErrUnknownArea) {
		t.Errorf("split-3-4 must not exist, got %v", err)
	}
}

func TestEvenMoneyExcludesZeros(t *testing.T) {
	c, err := For(wheel.European)
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	for _, id := range []string{"red", "black", "even", "odd", "low", "high"} {
		a, err := c.Lookup(id)
		if err != nil {
			t.Fatalf("Lookup(%s) failed: %v", id, err)
		}
		if len(a.Covered) != 18 {
			t.Errorf("%s covers %d numbers, want 18", id, len(a.Covered))
		}
		if a.Covers(wheel.Zero) {
			t.Errorf("%s must not cover 0", id)
		}
	}

	red, _ := c.Lookup("red")
	black, _ := c.Lookup("black")
	for _, s := range red.Covered {
		if black.Covers(s) {
			t.Errorf("%s is both red and black", s)
		}
	}
}

func TestCatalogForWheel(t *testing.T) {
	eu, err := For(wheel.European)
	if err != nil {
		t.Fatalf("For(european) failed: %v", err)
	}
	again, _ := For(wheel.European)
	if eu != again {
		t.Error("For should return the memoised catalog")
	}
	if eu.SlotCount() != 37 || eu.Wheel() != wheel.European {
		t.Errorf("unexpected catalog: wheel %s, %d slots", eu.Wheel(), eu.SlotCount())
	}

	for _, id := range []string{"straight-00", "topline"} {
		if _, err := eu.Lookup(id); !errors.Is(err, ErrUnknownArea) {
			t.Errorf("%s should be unknown on the European wheel, got %v", id, err)
		}
	}

	if _, err := For("french"); !errors.Is(err, wheel.ErrUnknownWheel) {
		t.Errorf("expected ErrUnknownWheel, got %v", err)
	}
	if _, err := BuildBetAreas("french"); !errors.Is(err, ErrEmptyWheel) {
		t.Errorf("expected ErrEmptyWheel, got %v", err)
	}

	if n := len(eu.ByKind(KindSpecial)); n != 0 {
		t.Errorf("European wheel has %d special areas, want 0", n)
	}
	if n := len(eu.ByKind(KindOutside)); n != 12 {
		t.Errorf("European wheel has %d outside areas, want 12", n)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	c, err := For(wheel.European)
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}

	a, _ := c.Lookup("straight-17")
	a.Covered[0] = 18
	b, _ := c.Lookup("straight-17")
	if b.Covered[0] != 17 {
		t.Fatal("mutating a looked-up area changed the catalog")
	}

	list := c.Areas()
	list[0].Covered[0] = 99
	if c.Areas()[0].Covered[0] == 99 {
		t.Fatal("mutating Areas() changed the catalog")
	}
}

func TestBuildBetAreasDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.SampledFrom(wheel.Types()).Draw(t, "wheel")
		first, err := BuildBetAreas(w)
		if err != nil {
			t.Fatalf("BuildBetAreas(%s) failed: %v", w, err)
		}
		second, _ := BuildBetAreas(w)

		i := rapid.IntRange(0, len(first)-1).Draw(t, "index")
		a, b := first[i], second[i]
		if a.ID != b.ID || a.Payout != b.Payout || len(a.Covered) != len(b.Covered) {
			t.Fatalf("area %d differs between builds: %+v vs %+v", i, a, b)
		}
	})
}

func TestEveryNumberCoveredByItsGroups(t *testing.T) {
	c, err := For(wheel.European)
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}

	rapid.Check(t, func(t *rapid.T) {
		n := wheel.Slot(rapid.IntRange(1, 36).Draw(t, "number"))

		// Each number sits in exactly one street, dozen, column, color, parity and half.
		groups := [][]string{
			streetIDs(),
			{"dozen-1", "dozen-2", "dozen-3"},
			{"col-1", "col-2", "col-3"},
			{"red", "black"},
			{"even", "odd"},
			{"low", "high"},
		}
		for _, ids := range groups {
			hits := 0
			for _, id := range ids {
				a, err := c.Lookup(id)
				if err != nil {
					t.Fatalf("Lookup(%s) failed: %v", id, err)
				}
				if a.Covers(n) {
					hits++
				}
			}
			if hits != 1 {
				t.Fatalf("number %s is covered by %d of %v, want exactly 1", n, hits, ids)
			}
		}
	})
}

func streetIDs() []string {
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("street-%d", i)
	}
	return ids
}
