package metrics

import (
	"github.com/sells-group/outbound-metrics/internal/model"
)

func fp(v float64) *float64 { return &v }

func outcome(o model.DealOutcome) *model.DealOutcome { return &o }

// acct builds a minimal account for tests.
func acct(domain string, employees, arr *float64) model.Account {
	return model.Account{
		CompanyName:   domain,
		Domain:        domain,
		EmployeeCount: employees,
		ARR:           arr,
	}
}

// event builds a minimal engagement event for tests.
func event(domain string, opened, clicked, replied bool) model.EngagementEvent {
	return model.EngagementEvent{
		CompanyDomain: domain,
		Opened:        opened,
		Clicked:       clicked,
		Replied:       replied,
	}
}

func testEngine() *Engine {
	return NewEngine(DefaultTables(), DefaultThresholds())
}
