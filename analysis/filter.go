package analysis

import (
	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// MinorityBand is one of the five fixed minority-percentage ranges offered by
// the dashboard's band dropdown.
type MinorityBand string

const (
	BandAll     MinorityBand = "All"
	BandBelow35 MinorityBand = "Below 35%"
	Band35To50  MinorityBand = "35–50%"
	Band50To75  MinorityBand = "50–75%"
	Band75Plus  MinorityBand = "75%+"
)

// Bands lists every band in dropdown order.
var Bands = []MinorityBand{BandAll, BandBelow35, Band35To50, Band50To75, Band75Plus}

// ValidBand reports whether s is a known band label.
func ValidBand(s string) bool {
	for _, b := range Bands {
		if string(b) == s {
			return true
		}
	}
	return false
}

// BandThresholds holds the three boundaries splitting minority percentage into
// the four non-"All" bands. The defaults come from the dashboard's original
// groupings.
type BandThresholds [3]float64

// DefaultThresholds are the stock 35/50/75 boundaries.
var DefaultThresholds = BandThresholds{35, 50, 75}

// Matches reports whether a minority percentage falls inside the band. The
// lower three bands are half-open [lo, hi); the top band is closed on both
// ends so a district at exactly the top boundary is included. An undefined
// percentage only ever matches "All".
func (b MinorityBand) Matches(m models.Metric, t BandThresholds) bool {
	if b == BandAll {
		return true
	}
	if !m.Defined() {
		return false
	}
	v := float64(m)
	switch b {
	case BandBelow35:
		return v < t[0]
	case Band35To50:
		return v >= t[0] && v < t[1]
	case Band50To75:
		return v >= t[1] && v < t[2]
	case Band75Plus:
		return v >= t[2] && v <= 100
	}
	return false
}

// DemographicFocus selects which demographic percentage column feeds the
// scatter chart.
type DemographicFocus string

const (
	FocusTotalMinority DemographicFocus = "Total Minority"
	FocusHispanic      DemographicFocus = "Hispanic"
	FocusBlack         DemographicFocus = "Black"
	FocusAsian         DemographicFocus = "Asian"
	FocusNative        DemographicFocus = "Native"
	FocusPacific       DemographicFocus = "Pacific"
)

// Focuses lists every focus option in dropdown order.
var Focuses = []DemographicFocus{
	FocusTotalMinority, FocusHispanic, FocusBlack, FocusAsian, FocusNative, FocusPacific,
}

// ValidFocus reports whether s is a known demographic focus key.
func ValidFocus(s string) bool {
	for _, f := range Focuses {
		if string(f) == s {
			return true
		}
	}
	return false
}

// Column returns the JSON column name the focus resolves to.
func (f DemographicFocus) Column() string {
	switch f {
	case FocusHispanic:
		return "hispanic_pct"
	case FocusBlack:
		return "black_pct"
	case FocusAsian:
		return "asian_pct"
	case FocusNative:
		return "native_pct"
	case FocusPacific:
		return "pacific_pct"
	}
	return "minority_pct"
}

// Value returns the focused percentage for one district.
func (f DemographicFocus) Value(d models.DistrictRecord) models.Metric {
	switch f {
	case FocusHispanic:
		return d.HispanicPct
	case FocusBlack:
		return d.BlackPct
	case FocusAsian:
		return d.AsianPct
	case FocusNative:
		return d.NativePct
	case FocusPacific:
		return d.PacificPct
	}
	return d.MinorityPct
}

// FilterRows applies the two filter predicates with AND semantics: state
// membership and minority-band membership. Order does not matter; both are
// pure row tests. The returned slice is freshly allocated and never aliases
// the input.
func FilterRows(districts []models.DistrictRecord, selected map[string]bool, band MinorityBand, t BandThresholds) []models.DistrictRecord {
	out := []models.DistrictRecord{}
	for _, d := range districts {
		if !selected[d.State] {
			continue
		}
		if !band.Matches(d.MinorityPct, t) {
			continue
		}
		out = append(out, d)
	}
	return out
}
