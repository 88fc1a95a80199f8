package ingest

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outbound-metrics/internal/model"
	"github.com/sells-group/outbound-metrics/internal/normalize"
)

// EventSummary reports join quality after event cleaning and enrichment.
type EventSummary struct {
	TotalRows            int     `json:"total_rows"`
	MatchedRows          int     `json:"matched_rows"`
	MatchRate            float64 `json:"match_rate"`
	UniqueDomains        int     `json:"unique_domains"`
	MatchedUniqueDomains int     `json:"matched_unique_domains"`
}

// CleanEvents normalizes raw outbound rows and enriches each from the
// matching cleaned account, joined on normalized domain. Unmatched rows are
// kept with MatchedAccount false and nil enrichment fields. Accounts with a
// blank domain never participate in the join.
func CleanEvents(table *Table, accounts []model.Account) ([]model.EngagementEvent, EventSummary, error) {
	colIdx := columnIndex(table.Header)
	if _, ok := colIdx["company_domain"]; !ok {
		return nil, EventSummary{}, eris.New("ingest: outbound missing required column \"company_domain\"")
	}

	byDomain := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if a.Domain != "" {
			byDomain[normalize.Domain(a.Domain)] = a
		}
	}

	domains := map[string]struct{}{}
	matchedDomains := map[string]struct{}{}
	matched := 0

	events := make([]model.EngagementEvent, 0, len(table.Rows))
	for _, row := range table.Rows {
		domain := normalize.Domain(getCol(row, colIdx, "company_domain"))
		domains[domain] = struct{}{}

		ev := model.EngagementEvent{
			Email:         normalize.Email(getCol(row, colIdx, "email")),
			Name:          normalize.CompanyName(getCol(row, colIdx, "name")),
			CompanyDomain: domain,
			CampaignID:    getCol(row, colIdx, "outbound_campaign_id"),
			SendDate:      getCol(row, colIdx, "send_date"),
			Opened:        normalize.Bool(getCol(row, colIdx, "opened")),
			Clicked:       normalize.Bool(getCol(row, colIdx, "clicked")),
			Replied:       normalize.Bool(getCol(row, colIdx, "replied")),
		}

		if acct, ok := byDomain[domain]; ok {
			matched++
			matchedDomains[domain] = struct{}{}

			won := acct.DealWon
			ev.MatchedAccount = true
			ev.AccountCompanyName = strPtr(acct.CompanyName)
			ev.AccountRegion = strPtr(acct.Region)
			ev.AccountIndustry = strPtr(acct.Industry)
			ev.AccountDealStage = strPtr(acct.DealStage)
			ev.AccountDealWon = &won
			ev.AccountEmployeeCount = acct.EmployeeCount
			ev.AccountARR = acct.ARR
		}

		events = append(events, ev)
	}

	var rate float64
	if len(events) > 0 {
		rate = math.Round(float64(matched)/float64(len(events))*100*100) / 100
	}

	summary := EventSummary{
		TotalRows:            len(events),
		MatchedRows:          matched,
		MatchRate:            rate,
		UniqueDomains:        len(domains),
		MatchedUniqueDomains: len(matchedDomains),
	}
	return events, summary, nil
}

func strPtr(s string) *string { return &s }
