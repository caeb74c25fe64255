package wheel

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Type selects the outcome space of a roulette wheel.
type Type string

const (
	European Type = "european" // single zero, 37 slots
	American Type = "american" // zero and double zero, 38 slots
)

var (
	ErrUnknownWheel = errors.New("unknown wheel type")
	ErrInvalidSlot  = errors.New("invalid slot")
)

// Types lists the supported wheels in display order.
func Types() []Type {
	return []Type{European, American}
}

// ParseType accepts a wheel name case-insensitively.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case European, American:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWheel, s)
	}
}

// Slot is one spin outcome: a number 1-36, Zero or DoubleZero.
type Slot int

const (
	Zero       Slot = 0
	DoubleZero Slot = -1
)

// IsNumber reports whether s is one of 1..36.
func (s Slot) IsNumber() bool {
	return s >= 1 && s <= 36
}

func (s Slot) String() string {
	switch s {
	case Zero:
		return "0"
	case DoubleZero:
		return "00"
	default:
		return strconv.Itoa(int(s))
	}
}

// MarshalJSON writes numbers as JSON numbers and the zeros as the strings "0" and "00",
// so the two zero pockets never collide on the wire.
func (s Slot) MarshalJSON() ([]byte, error) {
	if s.IsNumber() {
		return []byte(strconv.Itoa(int(s))), nil
	}
	return json.Marshal(s.String())
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 1 || n > 36 {
			return fmt.Errorf("%w: %d", ErrInvalidSlot, n)
		}
		*s = Slot(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSlot, string(data))
	}
	parsed, err := ParseSlot(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSlot parses "0", "00" or a number 1-36.
func ParseSlot(str string) (Slot, error) {
	switch str = strings.TrimSpace(str); str {
	case "0":
		return Zero, nil
	case "00":
		return DoubleZero, nil
	}

	n, err := strconv.Atoi(str)
	if err != nil || n < 1 || n > 36 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, str)
	}
	return Slot(n), nil
}

// Slots returns the outcome space of t: "0", 1..36 and, on the American wheel, "00".
// An unknown type yields nil.
func Slots(t Type) []Slot {
	var slots []Slot
	switch t {
	case European:
		slots = make([]Slot, 0, 37)
	case American:
		slots = make([]Slot, 0, 38)
	default:
		return nil
	}

	slots = append(slots, Zero)
	for n := 1; n <= 36; n++ {
		slots = append(slots, Slot(n))
	}
	if t == American {
		slots = append(slots, DoubleZero)
	}
	return slots
}

// SlotCount returns the number of equally likely outcomes for t (0 if unknown).
func SlotCount(t Type) int {
	switch t {
	case European:
		return 37
	case American:
		return 38
	default:
		return 0
	}
}
