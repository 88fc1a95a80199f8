// Package metrics implements the account/engagement join-and-aggregation
// engine: domain-key matching between the account and engagement datasets,
// engagement-tier classification, bucket assignment, grouped statistics, and
// threshold-based comparison of aggregates.
//
// The engine is pure and single-threaded per invocation. It reads immutable
// dataset snapshots, computes derived structures, and returns serializable
// reports; concurrent invocations are safe because each operates on its own
// loaded copies.
package metrics

import (
	"sort"
	"strings"

	"github.com/sells-group/outbound-metrics/internal/model"
	"github.com/sells-group/outbound-metrics/internal/normalize"
)

// DomainEngagement is the OR-reduction of all engagement events sharing a
// domain, plus representative enrichment values.
type DomainEngagement struct {
	Opened     bool
	Clicked    bool
	Replied    bool
	EventCount int

	// EarliestSend is the minimum parseable send date across the domain's
	// events, kept as its ISO string. Empty when no event carried one.
	EarliestSend string

	// ARR and DealWon are representative enrichment values: the last
	// non-nil (and, for the outcome, known) value encountered in event
	// order wins. This is an explicit latest-wins rule, not an average.
	ARR     *float64
	DealWon model.DealOutcome
}

// Tier returns the deepest engagement tier reached by the domain, selected
// by precedence across the aggregate flags. The aggregate tolerates
// logically inconsistent per-event flags (e.g. replied without opened)
// because precedence is evaluated on the OR-reduced values, not per row.
func (d *DomainEngagement) Tier() model.Tier {
	switch {
	case d.Replied:
		return model.TierReplied
	case d.Clicked:
		return model.TierClicked
	case d.Opened:
		return model.TierOpened
	default:
		return model.TierSent
	}
}

// Index is the joined, classified view of one snapshot pair. It is built
// once per computation and read-only thereafter.
type Index struct {
	// Accounts preserves snapshot order; reports iterate it so that
	// floating-point accumulation is reproducible across runs.
	Accounts []model.Account

	// AccountByDomain maps normalized domain to its account. Duplicate
	// domains resolve last-write-wins.
	AccountByDomain map[string]model.Account

	// Engagement maps normalized domain to its event aggregate. Domains
	// here may have no matching account; they still count toward tier
	// groups.
	Engagement map[string]*DomainEngagement
}

// BuildIndex joins the two datasets by normalized domain and computes the
// per-domain engagement aggregates. Events with a blank domain are dropped;
// accounts with a blank domain are kept in Accounts (and classify as
// Untouched) but excluded from the domain map.
func BuildIndex(accounts []model.Account, events []model.EngagementEvent) *Index {
	idx := &Index{
		Accounts:        accounts,
		AccountByDomain: make(map[string]model.Account, len(accounts)),
		Engagement:      make(map[string]*DomainEngagement),
	}

	for _, a := range accounts {
		d := strings.ToLower(a.Domain)
		if d == "" {
			continue
		}
		idx.AccountByDomain[d] = a
	}

	for _, ev := range events {
		d := strings.ToLower(ev.CompanyDomain)
		if d == "" {
			continue
		}
		agg, ok := idx.Engagement[d]
		if !ok {
			agg = &DomainEngagement{}
			idx.Engagement[d] = agg
		}
		agg.EventCount++
		agg.Opened = agg.Opened || ev.Opened
		agg.Clicked = agg.Clicked || ev.Clicked
		agg.Replied = agg.Replied || ev.Replied

		if _, ok := normalize.ParseDate(ev.SendDate); ok {
			sd := strings.TrimSpace(ev.SendDate)
			if agg.EarliestSend == "" || sd < agg.EarliestSend {
				agg.EarliestSend = sd
			}
		}
		if ev.AccountARR != nil {
			agg.ARR = ev.AccountARR
		}
		if ev.AccountDealWon != nil && ev.AccountDealWon.Known() {
			agg.DealWon = *ev.AccountDealWon
		}
	}

	return idx
}

// TierFor classifies an account domain: Untouched when the domain has no
// events, otherwise the aggregate's precedence tier. Every domain receives
// exactly one of the five tiers.
func (idx *Index) TierFor(domain string) model.Tier {
	agg, ok := idx.Engagement[strings.ToLower(domain)]
	if !ok {
		return model.TierUntouched
	}
	return agg.Tier()
}

// TouchedDomains returns the sorted list of all domains with at least one
// event, matched to an account or not.
func (idx *Index) TouchedDomains() []string {
	domains := make([]string, 0, len(idx.Engagement))
	for d := range idx.Engagement {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}
