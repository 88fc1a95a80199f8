package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomain(t *testing.T) {
	assert.Equal(t, "acme.com", Domain("  WWW.Acme.COM  "))
	assert.Equal(t, "acme.com", Domain("acme.com"))
	assert.Equal(t, "", Domain("   "))
}

func TestDomain_StripsOneWWWLevelOnly(t *testing.T) {
	assert.Equal(t, "www.x.com", Domain("www.www.x.com"))
}

func TestCompanyName(t *testing.T) {
	assert.Equal(t, "Acme Rocket Co", CompanyName("  Acme   Rocket  Co "))
	assert.Equal(t, "", CompanyName("   "))
}

func TestNumber(t *testing.T) {
	n := Number("42.5")
	require.NotNil(t, n)
	assert.Equal(t, 42.5, *n)

	assert.Nil(t, Number(""))
	assert.Nil(t, Number("   "))
	assert.Nil(t, Number("n/a"))
	assert.Nil(t, Number("12abc"))
	assert.Nil(t, Number("NaN"))
	assert.Nil(t, Number("Inf"))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool("TRUE"))
	assert.True(t, Bool(" true "))
	assert.False(t, Bool("FALSE"))
	assert.False(t, Bool("yes"))
	assert.False(t, Bool(""))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDate("2024-03-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = ParseDate("not-a-date")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
	_, ok = ParseDate("15/03/2024")
	assert.False(t, ok)
}
