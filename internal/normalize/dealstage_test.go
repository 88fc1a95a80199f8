package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/outbound-metrics/internal/model"
)

func TestDealStage_ClosedWon(t *testing.T) {
	stage, won := DealStage("Closed Won")
	assert.Equal(t, "Closed", stage)
	assert.Equal(t, model.OutcomeWon, won)

	stage, won = DealStage("  closed won - renewal  ")
	assert.Equal(t, "Closed", stage)
	assert.Equal(t, model.OutcomeWon, won)
}

func TestDealStage_ClosedLost(t *testing.T) {
	stage, won := DealStage("CLOSED LOST")
	assert.Equal(t, "Closed", stage)
	assert.Equal(t, model.OutcomeLost, won)
}

func TestDealStage_Passthrough(t *testing.T) {
	stage, won := DealStage(" Proposal ")
	assert.Equal(t, "Proposal", stage)
	assert.Equal(t, model.OutcomeUnknown, won)
	assert.False(t, won.Known())
}

func TestDealStage_OutcomeLivesInWonNotStage(t *testing.T) {
	// Both outcomes collapse to the same stage label; only the outcome
	// field distinguishes them.
	wonStage, won := DealStage("closed won")
	lostStage, lost := DealStage("closed lost")
	assert.Equal(t, wonStage, lostStage)
	assert.True(t, won.Won())
	assert.False(t, lost.Won())
	assert.True(t, lost.Known())
}
