package metrics

import (
	"strings"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// Coverage splits the account population into touched (at least one
// engagement event for the domain) and untouched, with ARR stats for each
// side. The invariant touched + untouched == total always holds.
func (e *Engine) Coverage(idx *Index) model.CoverageReport {
	var touchedARR, untouchedARR []*float64
	var touched, untouched int

	for _, a := range idx.Accounts {
		d := strings.ToLower(a.Domain)
		if _, ok := idx.Engagement[d]; ok && d != "" {
			touched++
			touchedARR = append(touchedARR, a.ARR)
		} else {
			untouched++
			untouchedARR = append(untouchedARR, a.ARR)
		}
	}

	total := len(idx.Accounts)
	var pct float64
	if total > 0 {
		pct = float64(touched) / float64(total) * 100
	}

	return model.CoverageReport{
		TotalAccounts:  total,
		TouchedCount:   touched,
		UntouchedCount: untouched,
		CoveragePct:    pct,
		TouchedARR:     Summarize(touchedARR),
		UntouchedARR:   Summarize(untouchedARR),
	}
}
