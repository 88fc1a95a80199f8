package metrics

import (
	"strings"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// tierDisplayLabel maps the Sent tier to its table label.
func tierDisplayLabel(t model.Tier) string {
	if t == model.TierSent {
		return "Sent only"
	}
	return string(t)
}

// EmployeeBucketARR compares average ARR of untouched vs. touched accounts
// within each employee-size band. The touched side reports the
// best-performing engagement tier; "best" is the maximum tier average, with
// ties resolving to the first tier in declaration order (Sent, Opened,
// Clicked, Replied). Accounts without an employee count are excluded from
// this dimension entirely.
func (e *Engine) EmployeeBucketARR(idx *Index) model.EmployeeBucketReport {
	type collect struct {
		untouched []*float64
		tiers     map[model.Tier][]*float64
	}
	byBucket := make(map[string]*collect, len(e.buckets.Employee))
	for _, label := range e.buckets.Employee.Labels() {
		byBucket[label] = &collect{tiers: map[model.Tier][]*float64{}}
	}

	for _, a := range idx.Accounts {
		label, ok := e.buckets.Employee.For(a.EmployeeCount)
		if !ok {
			continue
		}
		col := byBucket[label]
		d := strings.ToLower(a.Domain)
		agg, touched := idx.Engagement[d]
		if !touched || d == "" {
			col.untouched = append(col.untouched, a.ARR)
			continue
		}
		tier := agg.Tier()
		col.tiers[tier] = append(col.tiers[tier], a.ARR)
	}

	rows := make([]model.EmployeeBucketRow, 0, len(e.buckets.Employee))
	for _, label := range e.buckets.Employee.Labels() {
		col := byBucket[label]
		row := model.EmployeeBucketRow{
			Bucket:       label,
			UntouchedAvg: Avg(col.untouched),
		}

		// Tier averages in declaration order; a later tier replaces the
		// best only on a strictly greater average.
		var bestTier model.Tier
		for _, tier := range model.TouchedTiers {
			avg := Avg(col.tiers[tier])
			if avg == nil {
				continue
			}
			if row.TouchedBestAvg == nil || *avg > *row.TouchedBestAvg {
				row.TouchedBestAvg = avg
				bestTier = tier
			}
			if row.TouchedMinAvg == nil || *avg < *row.TouchedMinAvg {
				row.TouchedMinAvg = avg
			}
			if row.TouchedMaxAvg == nil || *avg > *row.TouchedMaxAvg {
				row.TouchedMaxAvg = avg
			}
		}
		if row.TouchedBestAvg != nil {
			label := tierDisplayLabel(bestTier)
			row.TouchedBestLabel = &label
		}

		cmp := Compare(row.UntouchedAvg, row.TouchedBestAvg, e.thresholds)
		switch cmp.Winner {
		case SideA:
			row.Winner = "untouched"
		case SideB:
			row.Winner = "touched"
		default:
			row.Winner = "none"
		}
		row.LiftAbs = cmp.Delta
		row.LiftPct = cmp.Pct

		rows = append(rows, row)
	}

	return model.EmployeeBucketReport{Rows: rows}
}
