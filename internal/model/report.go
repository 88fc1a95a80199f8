package model

// ValueStats summarizes a set of numeric values. Every statistic is computed
// over non-nil finite contributors only; when none exist, Count is 0 and the
// remaining fields are nil — never zero and never NaN.
type ValueStats struct {
	Count  int      `json:"count"`
	Avg    *float64 `json:"avg"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Median *float64 `json:"median"`
}

// CoverageReport summarizes account-level outbound coverage: how many
// accounts have at least one engagement event, and ARR statistics for the
// touched and untouched populations.
type CoverageReport struct {
	TotalAccounts  int        `json:"totalAccounts"`
	TouchedCount   int        `json:"touchedCount"`
	UntouchedCount int        `json:"untouchedCount"`
	CoveragePct    float64    `json:"coveragePct"`
	TouchedARR     ValueStats `json:"touchedArr"`
	UntouchedARR   ValueStats `json:"untouchedArr"`
}

// EngagementGroup is one row of the engagement-coverage table: a set of
// domains at a given engagement depth with ARR and win-rate stats drawn from
// event enrichment.
type EngagementGroup struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Accounts int      `json:"accounts"`
	AvgARR   *float64 `json:"avgArr"`
	WinRate  *float64 `json:"winRate"`
}

// EngagementCoverageReport lists the engagement groups in fixed order:
// Untouched, Touched (all), Replied, Clicked, Opened, Sent only.
type EngagementCoverageReport struct {
	Groups        []EngagementGroup `json:"groups"`
	TotalAccounts int               `json:"totalAccounts"`
}

// EmployeeBucketRow compares untouched vs. touched average ARR within one
// employee-size band. Winner is "touched", "untouched", or "none"; the lift
// fields are nil when the two sides cannot be compared.
type EmployeeBucketRow struct {
	Bucket           string   `json:"bucket"`
	UntouchedAvg     *float64 `json:"untouchedAvg"`
	TouchedBestAvg   *float64 `json:"touchedBestAvg"`
	TouchedMinAvg    *float64 `json:"touchedMinAvg"`
	TouchedMaxAvg    *float64 `json:"touchedMaxAvg"`
	TouchedBestLabel *string  `json:"touchedBestLabel"`
	Winner           string   `json:"winner"`
	LiftAbs          *float64 `json:"liftAbs"`
	LiftPct          *float64 `json:"liftPct"`
}

// EmployeeBucketReport holds one row per employee-size band, in band order.
type EmployeeBucketReport struct {
	Rows []EmployeeBucketRow `json:"rows"`
}

// TouchTimingBucket summarizes accounts whose first touch fell in one
// signup-to-touch timing band. AvgDaysToTouch is nil for "Never touched".
type TouchTimingBucket struct {
	Bucket         string   `json:"bucket"`
	Count          int      `json:"count"`
	Pct            float64  `json:"pct"`
	AvgARR         *float64 `json:"avgArr"`
	WinRate        *float64 `json:"winRate"`
	AvgDaysToTouch *float64 `json:"avgDaysToTouch"`
}

// TouchTimingReport lists the timing buckets in fixed order: Early, Medium,
// Late, Never touched.
type TouchTimingReport struct {
	TotalAccounts int                 `json:"totalAccounts"`
	Buckets       []TouchTimingBucket `json:"buckets"`
}

// IndustryTierStat is one cell of the industry × engagement-tier cross-tab.
type IndustryTierStat struct {
	Industry         string   `json:"industry"`
	TouchLevel       Tier     `json:"touchLevel"`
	AccountCount     int      `json:"accountCount"`
	AvgARR           *float64 `json:"avgArr"`
	WinRate          *float64 `json:"winRate"`
	AvgLogins        *float64 `json:"avgLogins"`
	AvgFeatureEvents *float64 `json:"avgFeatureEvents"`
}

// IndustryReport is the filterable industry cross-tab plus the filter
// vocabularies (all known regions and the employee band labels).
type IndustryReport struct {
	IndustryStats   []IndustryTierStat `json:"industryStats"`
	Regions         []string           `json:"regions"`
	EmployeeBuckets []string           `json:"employeeBuckets"`
}

// ARRBandRow summarizes coverage and outcomes within one ARR band.
type ARRBandRow struct {
	Bucket       string   `json:"bucket"`
	AccountCount int      `json:"accountCount"`
	TouchedCount int      `json:"touchedCount"`
	CoveragePct  float64  `json:"coveragePct"`
	WinRate      *float64 `json:"winRate"`
}

// ARRDistributionReport holds one row per ARR band, in band order.
type ARRDistributionReport struct {
	Rows []ARRBandRow `json:"rows"`
}

// MetricsBundle carries every report computed from a single snapshot.
type MetricsBundle struct {
	Coverage    CoverageReport           `json:"coverage"`
	Engagement  EngagementCoverageReport `json:"engagement"`
	EmployeeARR EmployeeBucketReport     `json:"employeeArr"`
	TouchTiming TouchTimingReport        `json:"touchTiming"`
	Industry    IndustryReport           `json:"industry"`
	ARRBands    ARRDistributionReport    `json:"arrBands"`
}
