package metrics

import (
	"strings"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// ARRDistribution reports, per ARR band, how many accounts sit in the band,
// how many of those have been touched, and the win rate among known
// outcomes. Accounts without an ARR value are excluded from this dimension.
func (e *Engine) ARRDistribution(idx *Index) model.ARRDistributionReport {
	type collect struct {
		count    int
		touched  int
		outcomes []model.DealOutcome
	}
	byBucket := make(map[string]*collect, len(e.buckets.ARR))
	for _, label := range e.buckets.ARR.Labels() {
		byBucket[label] = &collect{}
	}

	for _, a := range idx.Accounts {
		label, ok := e.buckets.ARR.For(a.ARR)
		if !ok {
			continue
		}
		col := byBucket[label]
		col.count++
		d := strings.ToLower(a.Domain)
		if _, touched := idx.Engagement[d]; touched && d != "" {
			col.touched++
		}
		col.outcomes = append(col.outcomes, a.DealWon)
	}

	rows := make([]model.ARRBandRow, 0, len(e.buckets.ARR))
	for _, label := range e.buckets.ARR.Labels() {
		col := byBucket[label]
		var pct float64
		if col.count > 0 {
			pct = float64(col.touched) / float64(col.count) * 100
		}
		rows = append(rows, model.ARRBandRow{
			Bucket:       label,
			AccountCount: col.count,
			TouchedCount: col.touched,
			CoveragePct:  pct,
			WinRate:      WinRate(col.outcomes),
		})
	}

	return model.ARRDistributionReport{Rows: rows}
}
