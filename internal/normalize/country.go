// Package normalize turns raw heterogeneous field values — country names,
// industry free text, deal-stage strings, domains, numeric strings — into
// canonical forms. It is the leaf of the metrics pipeline and has no
// dependencies on the other stages.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CountryInfo is the canonical name and region bucket for a country.
type CountryInfo struct {
	Name   string
	Region string
}

// countryAliases maps lowercased raw country strings to their canonical
// form. Lookup is exact and case-insensitive only; there is no fuzzy
// matching. The table covers the dataset plus common variants.
var countryAliases = map[string]CountryInfo{
	"united states":            {"United States", "North America"},
	"usa":                      {"United States", "North America"},
	"u.s.a.":                   {"United States", "North America"},
	"united states of america": {"United States", "North America"},
	"canada":                   {"Canada", "North America"},
	"mexico":                   {"Mexico", "North America"},
	"united kingdom":           {"United Kingdom", "Europe"},
	"uk":                       {"United Kingdom", "Europe"},
	"england":                  {"United Kingdom", "Europe"},
	"britain":                  {"United Kingdom", "Europe"},
	"great britain":            {"United Kingdom", "Europe"},
	"australia":                {"Australia", "Oceania"},
	"chile":                    {"Chile", "South America"},
	"qatar":                    {"Qatar", "Middle East"},
	"south africa":             {"South Africa", "Africa"},
	"czechia":                  {"Czechia", "Europe"},
	"czech republic":           {"Czechia", "Europe"},
	"germany":                  {"Germany", "Europe"},
	"france":                   {"France", "Europe"},
	"spain":                    {"Spain", "Europe"},
	"italy":                    {"Italy", "Europe"},
	"netherlands":              {"Netherlands", "Europe"},
	"belgium":                  {"Belgium", "Europe"},
	"sweden":                   {"Sweden", "Europe"},
	"norway":                   {"Norway", "Europe"},
	"finland":                  {"Finland", "Europe"},
	"denmark":                  {"Denmark", "Europe"},
	"brazil":                   {"Brazil", "South America"},
	"argentina":                {"Argentina", "South America"},
	"colombia":                 {"Colombia", "South America"},
	"peru":                     {"Peru", "South America"},
	"nigeria":                  {"Nigeria", "Africa"},
	"kenya":                    {"Kenya", "Africa"},
	"egypt":                    {"Egypt", "Africa"},
	"india":                    {"India", "Asia"},
	"china":                    {"China", "Asia"},
	"japan":                    {"Japan", "Asia"},
	"singapore":                {"Singapore", "Asia"},
	"indonesia":                {"Indonesia", "Asia"},
	"thailand":                 {"Thailand", "Asia"},
	"vietnam":                  {"Vietnam", "Asia"},
	"philippines":              {"Philippines", "Asia"},
}

// RegionUnknown is assigned when a country misses the alias table.
const RegionUnknown = "Unknown"

// titleCaser capitalizes the first letter of each word without lowering the
// rest, matching the fallback used when cleaning the source dataset.
var titleCaser = cases.Title(language.English, cases.NoLower)

// Country resolves a raw country string to its canonical name and region.
// On an alias miss the trimmed input is title-cased and retained with the
// Unknown region; unknown values are never dropped.
func Country(raw string) CountryInfo {
	key := strings.ToLower(strings.TrimSpace(raw))
	if info, ok := countryAliases[key]; ok {
		return info
	}
	name := titleCaser.String(strings.Join(strings.Fields(raw), " "))
	return CountryInfo{Name: name, Region: RegionUnknown}
}
