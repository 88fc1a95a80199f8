package normalize

import (
	"regexp"
	"strings"

	"github.com/sells-group/outbound-metrics/internal/model"
)

var (
	closedWonRe  = regexp.MustCompile(`(?i)closed won`)
	closedLostRe = regexp.MustCompile(`(?i)closed lost`)
)

// DealStage collapses both closed outcomes into the single stage "Closed"
// while preserving the outcome separately. Any other stage passes through
// trimmed, with an unknown outcome.
func DealStage(raw string) (stage string, won model.DealOutcome) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case closedWonRe.MatchString(trimmed):
		return "Closed", model.OutcomeWon
	case closedLostRe.MatchString(trimmed):
		return "Closed", model.OutcomeLost
	default:
		return trimmed, model.OutcomeUnknown
	}
}
