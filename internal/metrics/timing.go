package metrics

import (
	"math"
	"strings"

	"github.com/sells-group/outbound-metrics/internal/model"
	"github.com/sells-group/outbound-metrics/internal/normalize"
)

// Signup-to-first-touch timing bands. These are rule-derived rather than a
// static range table.
const (
	TimingEarly = "Early"
	TimingMed   = "Medium"
	TimingLate  = "Late"
	TimingNever = "Never touched"
)

// TimingBuckets lists the bands in display order.
var TimingBuckets = []string{TimingEarly, TimingMed, TimingLate, TimingNever}

// timingBucket assigns an account to a timing band. No recorded first touch
// means "Never touched"; so does a first touch with a missing or
// unparseable signup date — that fallback is deliberate. A negative day
// count (touch before signup) is not special-cased and falls through to
// whichever band its magnitude satisfies.
func timingBucket(signupDate, firstTouch string) (bucket string, days *float64) {
	if firstTouch == "" {
		return TimingNever, nil
	}
	signup, okS := normalize.ParseDate(signupDate)
	touch, okF := normalize.ParseDate(firstTouch)
	if !okS || !okF {
		return TimingNever, nil
	}

	d := math.Floor(touch.Sub(signup).Hours() / 24)
	switch {
	case d <= 30:
		return TimingEarly, &d
	case d <= 90:
		return TimingMed, &d
	default:
		return TimingLate, &d
	}
}

// TouchTiming cohorts accounts by how quickly the first outbound touch
// followed signup, reporting count, share of all accounts, ARR, win rate,
// and average days-to-touch per band.
func (e *Engine) TouchTiming(idx *Index) model.TouchTimingReport {
	type collect struct {
		count    int
		arr      []*float64
		outcomes []model.DealOutcome
		days     []*float64
	}
	buckets := make(map[string]*collect, len(TimingBuckets))
	for _, b := range TimingBuckets {
		buckets[b] = &collect{}
	}

	for _, a := range idx.Accounts {
		var firstTouch string
		if agg, ok := idx.Engagement[strings.ToLower(a.Domain)]; ok {
			firstTouch = agg.EarliestSend
		}
		bucket, days := timingBucket(a.SignupDate, firstTouch)

		col := buckets[bucket]
		col.count++
		col.arr = append(col.arr, a.ARR)
		col.outcomes = append(col.outcomes, a.DealWon)
		if days != nil {
			col.days = append(col.days, days)
		}
	}

	total := len(idx.Accounts)
	rows := make([]model.TouchTimingBucket, 0, len(TimingBuckets))
	for _, b := range TimingBuckets {
		col := buckets[b]
		var pct float64
		if total > 0 {
			pct = float64(col.count) / float64(total) * 100
		}
		row := model.TouchTimingBucket{
			Bucket:  b,
			Count:   col.count,
			Pct:     pct,
			AvgARR:  Avg(col.arr),
			WinRate: WinRate(col.outcomes),
		}
		if b != TimingNever {
			row.AvgDaysToTouch = Avg(col.days)
		}
		rows = append(rows, row)
	}

	return model.TouchTimingReport{TotalAccounts: total, Buckets: rows}
}
