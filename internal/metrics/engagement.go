package metrics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/outbound-metrics/internal/model"
)

var groupKeyRe = regexp.MustCompile(`[^a-z0-9]+`)

// groupKey derives a stable machine key from a display label.
func groupKey(label string) string {
	return groupKeyRe.ReplaceAllString(strings.ToLower(label), "-")
}

// EngagementCoverage groups domains by engagement depth and reports distinct
// domain counts with ARR and win-rate statistics drawn from event
// enrichment. Unmatched engagement domains are retained in their tier
// groups; untouched accounts have no events, so their group carries counts
// only. Groups appear in fixed order: Untouched, Touched (all), Replied,
// Clicked, Opened, Sent only.
func (e *Engine) EngagementCoverage(idx *Index) model.EngagementCoverageReport {
	touched := idx.TouchedDomains()

	byTier := map[model.Tier][]string{}
	for _, d := range touched {
		tier := idx.Engagement[d].Tier()
		byTier[tier] = append(byTier[tier], d)
	}

	// Untouched: accounts with no events at all.
	var untouched []string
	for d := range idx.AccountByDomain {
		if _, ok := idx.Engagement[d]; !ok {
			untouched = append(untouched, d)
		}
	}
	sort.Strings(untouched)

	buildStat := func(label string, domains []string) model.EngagementGroup {
		var arr []*float64
		var outcomes []model.DealOutcome
		for _, d := range domains {
			agg, ok := idx.Engagement[d]
			if !ok {
				continue
			}
			if agg.ARR != nil {
				arr = append(arr, agg.ARR)
			}
			if agg.DealWon.Known() {
				outcomes = append(outcomes, agg.DealWon)
			}
		}
		return model.EngagementGroup{
			Key:      groupKey(label),
			Label:    label,
			Accounts: len(domains),
			AvgARR:   Avg(arr),
			WinRate:  WinRate(outcomes),
		}
	}

	groups := []model.EngagementGroup{
		buildStat("Untouched", untouched),
		buildStat("Touched (all)", touched),
		buildStat("Replied", byTier[model.TierReplied]),
		buildStat("Clicked", byTier[model.TierClicked]),
		buildStat("Opened", byTier[model.TierOpened]),
		buildStat("Sent only", byTier[model.TierSent]),
	}

	return model.EngagementCoverageReport{
		Groups:        groups,
		TotalAccounts: len(idx.Accounts),
	}
}
