package stocksim

import (
	"fmt"
	"math"
	"strconv"
)

// Percent is a percentage, 1.5 means 1.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// Round returns p rounded to 2 decimals.
func (p Percent) Round() Percent { return Percent(round2(float64(p))) }

func (p Percent) String() string {
	r := p.Round()
	if r == 0 {
		r = 0 // no "-0.00%"
	}
	return fmt.Sprintf("%.2f%%", r)
}

// SignedString returns p with an explicit sign, except for values that round to zero.
func (p Percent) SignedString() string {
	r := p.Round()
	if r == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%+.2f%%", r)
}

// round2 rounds half away from zero to 2 decimals.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// MarshalJSON writes p as a JSON number rounded to 2 decimals.
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(round2(float64(p)), 'f', 2, 64)), nil
}
