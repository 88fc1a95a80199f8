package normalize

import "strings"

// IndustryUnknown is the catch-all industry bucket.
const IndustryUnknown = "Other / Unknown"

// industryRule maps a broad industry bucket to its keyword set. A raw value
// resolves to the first rule whose keywords produce any case-insensitive
// substring match.
type industryRule struct {
	Bucket   string
	Keywords []string
}

// industryRules is evaluated strictly in order; the order is a documented
// contract. A value matching keywords of two buckets resolves to whichever
// bucket appears first here.
var industryRules = []industryRule{
	{"Software & Technology", []string{
		"tech", "software", "cloud", "data", "platform", "automation", "ai",
		"ml", "analytics", "it ", " it", "labs", "digital", "cyber",
		"security", "devops", "robot", "drone", "quantum", "monitoring",
		"cpq", "xr", "telematics",
	}},
	{"Financial Services", []string{
		"bank", "lending", "finance", "financial", "capital", "equity",
		"investment", "venture", "crowdfunding", "payments", "insur",
		"credit", "fintech", "private equity",
	}},
	{"Manufacturing & Industrial", []string{
		"manufacturing", "industrial", "engineering", "fabrication", "plant",
		"factory", "hardware",
	}},
	{"Retail & Consumer", []string{
		"retail", "e-commerce", "commerce", "consumer", "fashion", "apparel",
		"marketplace", "restaurant", "food", "hospitality", "ticket", "gaming",
	}},
	{"Media & Entertainment", []string{
		"media", "entertain", "stream", "content", "gaming network",
	}},
	{"Healthcare & Life Sciences", []string{
		"health", "medical", "pharma", "bio", "life science", "fitness",
	}},
	{"Energy & Utilities", []string{
		"energy", "solar", "power", "utility", "oil", "gas",
	}},
	{"Transportation & Mobility", []string{
		"transport", "fleet", "mobility", "logistic", "supply chain", "warehous",
	}},
	{"Professional & Business Services", []string{
		"consult", "professional", "services", "agency", "studio", "partners",
		"group", "holdings", "solutions", "collective", "network",
	}},
	{"Public / Nonprofit / Education", []string{
		"government", "public", "ngo", "nonprofit", "education", "university",
		"research",
	}},
	{"Real Estate & Facilities", []string{
		"real estate", "property", "facilities", "facility", "construction",
	}},
}

// IndustryBuckets lists every bucket label in rule order, with the catch-all
// last.
func IndustryBuckets() []string {
	out := make([]string, 0, len(industryRules)+1)
	for _, r := range industryRules {
		out = append(out, r.Bucket)
	}
	return append(out, IndustryUnknown)
}

// Industry consolidates free-text industry values into a small set of broad
// buckets. Blank input resolves to the catch-all unconditionally, skipping
// keyword tests.
func Industry(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return IndustryUnknown
	}
	lc := strings.ToLower(value)
	for _, rule := range industryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lc, kw) {
				return rule.Bucket
			}
		}
	}
	return IndustryUnknown
}
