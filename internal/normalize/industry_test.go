package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndustry_KeywordMatch(t *testing.T) {
	tests := []struct {
		raw    string
		bucket string
	}{
		{"SaaS software vendor", "Software & Technology"},
		{"Cybersecurity", "Software & Technology"},
		{"Community Bank", "Financial Services"},
		{"Fintech lending", "Financial Services"},
		{"Steel fabrication", "Manufacturing & Industrial"},
		{"Fashion marketplace", "Retail & Consumer"},
		{"Streaming media", "Media & Entertainment"},
		{"Pharma research lab", "Healthcare & Life Sciences"},
		{"Solar power", "Energy & Utilities"},
		{"Fleet logistics", "Transportation & Mobility"},
		{"Management consulting", "Professional & Business Services"},
		{"Nonprofit education", "Public / Nonprofit / Education"},
		{"Commercial real estate", "Real Estate & Facilities"},
		{"Basket weaving", IndustryUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bucket, Industry(tt.raw), tt.raw)
	}
}

func TestIndustry_OrderIsSignificant(t *testing.T) {
	// "software consulting" matches both the technology and professional
	// services keyword sets; the earlier rule wins.
	assert.Equal(t, "Software & Technology", Industry("software consulting"))

	// "healthcare analytics" matches "analytics" before "health".
	assert.Equal(t, "Software & Technology", Industry("healthcare analytics"))
}

func TestIndustry_BlankSkipsKeywordTests(t *testing.T) {
	assert.Equal(t, IndustryUnknown, Industry(""))
	assert.Equal(t, IndustryUnknown, Industry("   "))
}

func TestIndustry_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "Financial Services", Industry("PRIVATE EQUITY"))
}

func TestIndustryBuckets_CatchAllLast(t *testing.T) {
	buckets := IndustryBuckets()
	assert.Len(t, buckets, 12)
	assert.Equal(t, IndustryUnknown, buckets[len(buckets)-1])
}
