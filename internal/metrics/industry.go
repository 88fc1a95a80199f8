package metrics

import (
	"sort"

	"github.com/sells-group/outbound-metrics/internal/model"
)

// IndustryFilter restricts the cross-tab to one region and/or one employee
// band. Zero values mean no restriction.
type IndustryFilter struct {
	Region         string
	EmployeeBucket string
}

// tierRank orders tiers shallowest first for row sorting.
var tierRank = func() map[model.Tier]int {
	m := make(map[model.Tier]int, len(model.AllTiers))
	for i, t := range model.AllTiers {
		m[t] = i
	}
	return m
}()

// Industry computes the industry × engagement-tier cross-tab over accounts
// passing the filter. Rows are ordered by industry then tier depth — a
// fixed, deterministic order rather than map iteration. The filter
// vocabularies (regions, employee bands) are collected from the full
// account set, not the filtered one.
func (e *Engine) Industry(idx *Index, filter IndustryFilter) model.IndustryReport {
	type groupKey struct {
		industry string
		tier     model.Tier
	}
	type collect struct {
		count    int
		arr      []*float64
		logins   []*float64
		features []*float64
		outcomes []model.DealOutcome
	}

	regionSet := map[string]struct{}{}
	groups := map[groupKey]*collect{}

	for _, a := range idx.Accounts {
		if a.Region != "" {
			regionSet[a.Region] = struct{}{}
		}
		if filter.Region != "" && a.Region != filter.Region {
			continue
		}
		if filter.EmployeeBucket != "" {
			bucket, ok := e.buckets.Employee.For(a.EmployeeCount)
			if !ok || bucket != filter.EmployeeBucket {
				continue
			}
		}

		key := groupKey{industry: a.Industry, tier: idx.TierFor(a.Domain)}
		col, ok := groups[key]
		if !ok {
			col = &collect{}
			groups[key] = col
		}
		col.count++
		col.arr = append(col.arr, a.ARR)
		col.logins = append(col.logins, a.Logins30d)
		col.features = append(col.features, a.FeatureEvents)
		col.outcomes = append(col.outcomes, a.DealWon)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].industry != keys[j].industry {
			return keys[i].industry < keys[j].industry
		}
		return tierRank[keys[i].tier] < tierRank[keys[j].tier]
	})

	stats := make([]model.IndustryTierStat, 0, len(keys))
	for _, k := range keys {
		col := groups[k]
		stats = append(stats, model.IndustryTierStat{
			Industry:         k.industry,
			TouchLevel:       k.tier,
			AccountCount:     col.count,
			AvgARR:           Avg(col.arr),
			WinRate:          WinRate(col.outcomes),
			AvgLogins:        Avg(col.logins),
			AvgFeatureEvents: Avg(col.features),
		})
	}

	regions := make([]string, 0, len(regionSet))
	for r := range regionSet {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	return model.IndustryReport{
		IndustryStats:   stats,
		Regions:         regions,
		EmployeeBuckets: e.buckets.Employee.Labels(),
	}
}
