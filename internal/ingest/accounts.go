package ingest

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/outbound-metrics/internal/model"
	"github.com/sells-group/outbound-metrics/internal/normalize"
)

// blankIndustry is the sentinel used when counting distinct raw industry
// values, so blank cells register as one value instead of vanishing.
const blankIndustry = "<blank>"

// AccountSummary reports what account cleaning did, for operator review.
type AccountSummary struct {
	TotalRows             int            `json:"total_rows"`
	DistinctRawIndustries int            `json:"distinct_raw_industries"`
	IndustryCounts        map[string]int `json:"industry_buckets"`
}

// CleanAccounts normalizes raw account rows into model accounts. Every input
// row yields an output row; rows with a blank domain are kept (they simply
// never join). The legacy header "contacts in account" is accepted alongside
// its snake_case form.
func CleanAccounts(table *Table) ([]model.Account, AccountSummary, error) {
	colIdx := columnIndex(table.Header)
	if _, ok := colIdx["domain"]; !ok {
		return nil, AccountSummary{}, eris.New("ingest: accounts missing required column \"domain\"")
	}

	contactsCol := "contacts in account"
	if _, ok := colIdx[contactsCol]; !ok {
		contactsCol = "contacts_in_account"
	}

	rawIndustries := map[string]struct{}{}
	industryCounts := map[string]int{}

	accounts := make([]model.Account, 0, len(table.Rows))
	for _, row := range table.Rows {
		rawIndustry := getCol(row, colIdx, "industry")
		if rawIndustry == "" {
			rawIndustries[blankIndustry] = struct{}{}
		} else {
			rawIndustries[rawIndustry] = struct{}{}
		}

		country := normalize.Country(getCol(row, colIdx, "location"))
		industry := normalize.Industry(rawIndustry)
		stage, won := normalize.DealStage(getCol(row, colIdx, "deal_stage"))
		industryCounts[industry]++

		accounts = append(accounts, model.Account{
			CompanyName:   normalize.CompanyName(getCol(row, colIdx, "company_name")),
			Domain:        normalize.Domain(getCol(row, colIdx, "domain")),
			EmployeeCount: normalize.Number(getCol(row, colIdx, "employee_count")),
			Location:      country.Name,
			Region:        country.Region,
			Industry:      industry,
			Logins30d:     normalize.Number(getCol(row, colIdx, "logins_last_30d")),
			Contacts:      normalize.Number(getCol(row, colIdx, contactsCol)),
			FeatureEvents: normalize.Number(getCol(row, colIdx, "feature_event_count")),
			DealStage:     stage,
			DealWon:       won,
			ARR:           normalize.Number(getCol(row, colIdx, "arr")),
			SignupDate:    getCol(row, colIdx, "signup_date"),
		})
	}

	summary := AccountSummary{
		TotalRows:             len(accounts),
		DistinctRawIndustries: len(rawIndustries),
		IndustryCounts:        industryCounts,
	}
	return accounts, summary, nil
}
