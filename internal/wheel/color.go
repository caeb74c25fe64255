package wheel

// Color of a pocket on the wheel.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

// Red numbers: 1,3,5,7,9,12,14,16,18,19,21,23,25,27,30,32,34,36
var redNumbers = map[Slot]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// ColorOf follows the standard wheel table, not parity. Both zeros are green.
func ColorOf(s Slot) Color {
	if !s.IsNumber() {
		return Green
	}
	if redNumbers[s] {
		return Red
	}
	return Black
}
