package model

// Tier is the engagement depth classification for a domain: the deepest
// action observed across all of its events, selected by precedence rather
// than causally. Exactly one tier applies per domain.
type Tier string

const (
	TierUntouched Tier = "Untouched"
	TierSent      Tier = "Sent"
	TierOpened    Tier = "Opened"
	TierClicked   Tier = "Clicked"
	TierReplied   Tier = "Replied"
)

// TouchedTiers lists the touched tiers in declaration order. Tie-breaks
// between tiers (e.g. picking a best-performing tier) resolve to the first
// tier in this order; the order is a contract, not an iteration accident.
var TouchedTiers = []Tier{TierSent, TierOpened, TierClicked, TierReplied}

// AllTiers lists every tier in display order, shallowest first.
var AllTiers = []Tier{TierUntouched, TierSent, TierOpened, TierClicked, TierReplied}
