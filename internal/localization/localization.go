package localization

import (
	"regexp"
	"strings"
)

// ClimateBand is the coarse climate classification used to adjust
// ventilation targets and HVAC sizing.
type ClimateBand string

const (
	BandCold  ClimateBand = "cold"
	BandMixed ClimateBand = "mixed"
	BandWarm  ClimateBand = "warm"
)

// Localization is the result of resolving a ZIP code. CostFactor is a
// multiplier applied to base prices to approximate regional labor and
// material cost differences.
type Localization struct {
	Zip         string      `json:"zip"`
	ClimateBand ClimateBand `json:"climate_band"`
	RegionLabel string      `json:"region_label"`
	CostFactor  float64     `json:"cost_factor"`
}

// zipPattern accepts a 5-digit ZIP or ZIP+4. Used only to gate lead
// submission; display resolution works for any input.
var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ValidZip reports whether zip matches the 5-digit or ZIP+4 pattern.
func ValidZip(zip string) bool {
	return zipPattern.MatchString(strings.TrimSpace(zip))
}

// region maps a ZIP prefix to a metro label and cost factor.
type region struct {
	label  string
	factor float64
	// band overrides the leading-digit climate heuristic when set.
	band ClimateBand
}

// prefixRegions are metro-level overrides keyed by the first three ZIP
// digits. Factors approximate relative labor/material cost; they are
// marketing heuristics, not indexed data.
var prefixRegions = map[string]region{
	"100": {label: "New York Metro", factor: 1.35},
	"101": {label: "New York Metro", factor: 1.35},
	"102": {label: "New York Metro", factor: 1.35},
	"190": {label: "Philadelphia Metro", factor: 1.15},
	"191": {label: "Philadelphia Metro", factor: 1.15},
	"200": {label: "Washington DC Metro", factor: 1.20},
	"220": {label: "Northern Virginia", factor: 1.18},
	"300": {label: "Atlanta Metro", factor: 1.05},
	"303": {label: "Atlanta Metro", factor: 1.05},
	"331": {label: "Miami Metro", factor: 1.10, band: BandWarm},
	"332": {label: "Miami Metro", factor: 1.10, band: BandWarm},
	"606": {label: "Chicago Metro", factor: 1.18, band: BandCold},
	"607": {label: "Chicago Metro", factor: 1.18, band: BandCold},
	"750": {label: "Dallas Metro", factor: 1.08},
	"752": {label: "Dallas Metro", factor: 1.08},
	"770": {label: "Houston Metro", factor: 1.06},
	"800": {label: "Denver Metro", factor: 1.12, band: BandCold},
	"802": {label: "Denver Metro", factor: 1.12, band: BandCold},
	"850": {label: "Phoenix Metro", factor: 1.08, band: BandWarm},
	"900": {label: "Los Angeles Metro", factor: 1.30},
	"901": {label: "Los Angeles Metro", factor: 1.30},
	"941": {label: "San Francisco Bay Area", factor: 1.40},
	"980": {label: "Seattle Metro", factor: 1.22},
	"981": {label: "Seattle Metro", factor: 1.22},
}

// digitRegions is the fallback by leading ZIP digit when no metro
// prefix matches.
var digitRegions = [10]region{
	{label: "Northeast", factor: 1.20, band: BandCold},
	{label: "Northeast", factor: 1.15, band: BandCold},
	{label: "Mid-Atlantic", factor: 1.05, band: BandMixed},
	{label: "Southeast", factor: 0.95, band: BandWarm},
	{label: "Midwest", factor: 0.95, band: BandCold},
	{label: "Upper Midwest", factor: 0.92, band: BandCold},
	{label: "Central", factor: 0.95, band: BandMixed},
	{label: "South Central", factor: 0.95, band: BandWarm},
	{label: "Mountain West", factor: 1.00, band: BandMixed},
	{label: "West Coast", factor: 1.25, band: BandWarm},
}

// neutral is what unresolved input maps to. CostFactor 1.0 keeps every
// downstream estimate at the national baseline.
var neutral = Localization{
	ClimateBand: BandMixed,
	RegionLabel: "National Average",
	CostFactor:  1.0,
}

// Resolve maps a ZIP string to a region label, climate band, and cost
// factor. It never fails: empty or malformed input resolves to the
// national-average defaults. Purely a table lookup, safe to call on
// every keystroke.
func Resolve(zip string) Localization {
	trimmed := strings.TrimSpace(zip)

	digits := leadingDigits(trimmed)
	if len(digits) < 1 {
		out := neutral
		out.Zip = trimmed
		return out
	}

	lead := digitRegions[digits[0]-'0']
	out := Localization{
		Zip:         trimmed,
		ClimateBand: lead.band,
		RegionLabel: lead.label,
		CostFactor:  lead.factor,
	}

	if len(digits) >= 3 {
		if metro, ok := prefixRegions[digits[:3]]; ok {
			out.RegionLabel = metro.label
			out.CostFactor = metro.factor
			if metro.band != "" {
				out.ClimateBand = metro.band
			}
		}
	}

	return out
}

// leadingDigits returns the run of ASCII digits at the start of s,
// capped at five.
func leadingDigits(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
		if i == 4 {
			return s[:5]
		}
	}
	return s
}
