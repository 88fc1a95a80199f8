package metrics

import (
	"math"
	"sort"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// finite filters out nil and non-finite values, returning the contributing
// values in input order.
func finite(values []*float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		out = append(out, *v)
	}
	return out
}

// Summarize computes count, average, min, max, and median over the non-nil
// finite values. An empty contributing set yields Count 0 and nil for every
// other statistic, never zero or NaN.
func Summarize(values []*float64) model.ValueStats {
	nums := finite(values)
	if len(nums) == 0 {
		return model.ValueStats{}
	}
	sort.Float64s(nums)

	var sum float64
	for _, n := range nums {
		sum += n
	}
	count := len(nums)
	avg := sum / float64(count)
	min := nums[0]
	max := nums[count-1]

	mid := count / 2
	var median float64
	if count%2 == 0 {
		median = (nums[mid-1] + nums[mid]) / 2
	} else {
		median = nums[mid]
	}

	return model.ValueStats{
		Count:  count,
		Avg:    &avg,
		Min:    &min,
		Max:    &max,
		Median: &median,
	}
}

// Avg returns the arithmetic mean of the non-nil finite values, or nil when
// none contribute.
func Avg(values []*float64) *float64 {
	nums := finite(values)
	if len(nums) == 0 {
		return nil
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	avg := sum / float64(len(nums))
	return &avg
}

// WinRate returns the percentage of known outcomes that are wins. Unknown
// outcomes are excluded from both numerator and denominator — they are never
// treated as losses. Nil when no outcome is known.
func WinRate(outcomes []model.DealOutcome) *float64 {
	var wins, eligible int
	for _, o := range outcomes {
		if !o.Known() {
			continue
		}
		eligible++
		if o.Won() {
			wins++
		}
	}
	if eligible == 0 {
		return nil
	}
	rate := float64(wins) / float64(eligible) * 100
	return &rate
}
