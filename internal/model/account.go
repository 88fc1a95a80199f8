package model

import "time"

// DealOutcome is the tri-state closed-won flag derived from deal stage
// normalization. The empty string means the outcome is unknown; callers
// must read this field, not DealStage, to determine outcome.
type DealOutcome string

const (
	OutcomeWon     DealOutcome = "True"
	OutcomeLost    DealOutcome = "False"
	OutcomeUnknown DealOutcome = ""
)

// Known reports whether the outcome is a definite win or loss.
func (o DealOutcome) Known() bool {
	return o == OutcomeWon || o == OutcomeLost
}

// Won reports whether the deal closed won.
func (o DealOutcome) Won() bool {
	return o == OutcomeWon
}

// Account is one cleaned company record. The domain is the join key:
// lowercase, with a single leading "www." stripped. Numeric fields are nil
// when the source value was blank or unparseable, never coerced to zero.
// Accounts are immutable once created.
type Account struct {
	CompanyName   string      `json:"company_name"`
	Domain        string      `json:"domain"`
	EmployeeCount *float64    `json:"employee_count"`
	Location      string      `json:"location"`
	Region        string      `json:"region"`
	Industry      string      `json:"industry"`
	Logins30d     *float64    `json:"logins_last_30d"`
	Contacts      *float64    `json:"contacts_in_account"`
	FeatureEvents *float64    `json:"feature_event_count"`
	DealStage     string      `json:"deal_stage"`
	DealWon       DealOutcome `json:"deal_won"`
	ARR           *float64    `json:"arr"`
	SignupDate    string      `json:"signup_date"`
}

// EngagementEvent is one cleaned outbound send. CompanyDomain may not match
// any account; unmatched events still contribute to tier and coverage counts.
// The Account* fields are enrichment copies taken from a matched account at
// ingestion time and are nil when no match existed.
type EngagementEvent struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	CompanyDomain string `json:"company_domain"`
	CampaignID    string `json:"outbound_campaign_id"`
	SendDate      string `json:"send_date"`
	Opened        bool   `json:"opened"`
	Clicked       bool   `json:"clicked"`
	Replied       bool   `json:"replied"`

	MatchedAccount       bool         `json:"matched_account"`
	AccountCompanyName   *string      `json:"account_company_name"`
	AccountRegion        *string      `json:"account_region"`
	AccountIndustry      *string      `json:"account_industry"`
	AccountDealStage     *string      `json:"account_deal_stage"`
	AccountDealWon       *DealOutcome `json:"account_deal_won"`
	AccountEmployeeCount *float64     `json:"account_employee_count"`
	AccountARR           *float64     `json:"account_arr"`
}

// Snapshot describes one persisted pair of cleaned datasets. Metric
// computations always run against a full snapshot, never a partial one.
type Snapshot struct {
	ID           string    `json:"id"`
	AccountCount int       `json:"account_count"`
	EventCount   int       `json:"event_count"`
	CreatedAt    time.Time `json:"created_at"`
}
