package areas

import (
	"fmt"
	"sync"

	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

// Catalog is the read-only lookup table of every area on one wheel.
// It is safe for concurrent use.
type Catalog struct {
	wheel wheel.Type
	slots []wheel.Slot
	areas []BetArea
	byID  map[string]int
}

// NewCatalog builds a fresh catalog for w. Most callers want For.
func NewCatalog(w wheel.Type) (*Catalog, error) {
	list, err := BuildBetAreas(w)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(list))
	for i, a := range list {
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate bet area id %q", a.ID)
		}
		byID[a.ID] = i
	}

	return &Catalog{
		wheel: w,
		slots: wheel.Slots(w),
		areas: list,
		byID:  byID,
	}, nil
}

type memo struct {
	once    sync.Once
	catalog *Catalog
	err     error
}

var catalogs = map[wheel.Type]*memo{
	wheel.European: {},
	wheel.American: {},
}

// For returns the shared catalog for w, building it on first use.
func For(w wheel.Type) (*Catalog, error) {
	m, ok := catalogs[w]
	if !ok {
		return nil, fmt.Errorf("%w: %q", wheel.ErrUnknownWheel, w)
	}
	m.once.Do(func() {
		m.catalog, m.err = NewCatalog(w)
	})
	return m.catalog, m.err
}

// Wheel returns the wheel type the catalog was built for.
func (c *Catalog) Wheel() wheel.Type { return c.wheel }

// SlotCount is the size of the outcome space (37 or 38).
func (c *Catalog) SlotCount() int { return len(c.slots) }

// Slots returns a copy of the wheel's outcome space.
func (c *Catalog) Slots() []wheel.Slot {
	return append([]wheel.Slot(nil), c.slots...)
}

// Len returns the number of areas.
func (c *Catalog) Len() int { return len(c.areas) }

// Areas returns copies of every area in catalog order.
func (c *Catalog) Areas() []BetArea {
	out := make([]BetArea, len(c.areas))
	for i, a := range c.areas {
		out[i] = a.clone()
	}
	return out
}

// ByKind returns the areas of one kind in catalog order.
func (c *Catalog) ByKind(k Kind) []BetArea {
	out := []BetArea{}
	for _, a := range c.areas {
		if a.Kind == k {
			out = append(out, a.clone())
		}
	}
	return out
}

// Lookup finds an area by id. Ids that exist on the other wheel only (straight-00,
// topline) are unknown here.
func (c *Catalog) Lookup(id string) (BetArea, error) {
	i, ok := c.byID[id]
	if !ok {
		return BetArea{}, fmt.Errorf("%w: %q on %s wheel", ErrUnknownArea, id, c.wheel)
	}
	return c.areas[i].clone(), nil
}

func (a BetArea) clone() BetArea {
	a.Covered = append([]wheel.Slot(nil), a.Covered...)
	return a
}
