package metrics

import "math"

// Thresholds is the dual significance gate for highlighting a winner: a
// difference counts only when it clears the absolute floor OR the percentage
// floor, so noise-level gaps never win.
type Thresholds struct {
	AbsMin float64
	PctMin float64
}

// DefaultThresholds returns the observed production gates: 2000 currency
// units absolute, 5 percent relative.
func DefaultThresholds() Thresholds {
	return Thresholds{AbsMin: 2000, PctMin: 5}
}

// Side identifies the winner of a comparison.
type Side int

const (
	SideNone Side = iota
	SideA
	SideB
)

// Comparison is the ranked outcome of two aggregate values for one metric.
type Comparison struct {
	Winner Side

	// Delta is B - A; Pct is the signed lift relative to A. Both are nil
	// when the sides cannot be compared; Pct is also nil when A is zero,
	// rather than dividing by zero.
	Delta *float64
	Pct   *float64

	// Significant reports whether the dual threshold was cleared.
	// Comparable is false when either side lacks data; the caller should
	// then render a "no comparison available" sentinel, not an error.
	Significant bool
	Comparable  bool
}

// Compare ranks aggregate B (e.g. touched-best) against baseline A (e.g.
// untouched). When only one side has data that side wins by default, with no
// threshold applied against the absent value.
func Compare(a, b *float64, th Thresholds) Comparison {
	switch {
	case a == nil && b == nil:
		return Comparison{Winner: SideNone}
	case a == nil:
		return Comparison{Winner: SideB}
	case b == nil:
		return Comparison{Winner: SideA}
	}

	delta := *b - *a
	cmp := Comparison{Comparable: true, Delta: &delta}

	var sigPct float64
	if *a != 0 {
		pct := delta / *a * 100
		cmp.Pct = &pct
		sigPct = math.Abs(delta) / math.Abs(*a) * 100
	}

	cmp.Significant = math.Abs(delta) >= th.AbsMin || sigPct >= th.PctMin
	if !cmp.Significant {
		return cmp
	}

	switch {
	case delta > 0:
		cmp.Winner = SideB
	case delta < 0:
		cmp.Winner = SideA
	}
	return cmp
}
