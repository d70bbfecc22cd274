package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Metric is a derived percentage or margin value. A zero denominator makes a
// metric undefined; undefined metrics serialize as JSON null and every
// downstream aggregate skips them instead of coercing to zero.
type Metric float64

// Undefined returns the undefined sentinel.
func Undefined() Metric {
	return Metric(math.NaN())
}

// Defined reports whether the metric holds a real value.
func (m Metric) Defined() bool {
	return !math.IsNaN(float64(m))
}

// Round returns the metric rounded to the given number of decimal digits.
// Only the presentation layer should call this.
func (m Metric) Round(digits int) Metric {
	if !m.Defined() {
		return m
	}
	pow := math.Pow(10, float64(digits))
	return Metric(math.Round(float64(m)*pow) / pow)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Metric(v)
	return nil
}

// DistrictRecord is one congressional district: the raw vote and census counts
// from the snapshot plus the derived fields filled in by analysis.Derive.
type DistrictRecord struct {
	State          string `json:"state"`
	DistrictNumber string `json:"cd_num"`

	// Raw counts (2016-2020 composite election, 2020 census)
	DemVotes   int64 `json:"dem_votes"`
	RepVotes   int64 `json:"rep_votes"`
	TotalVotes int64 `json:"total_votes"`

	Hispanic        int64 `json:"hispanic"`
	Black           int64 `json:"black"`
	Asian           int64 `json:"asian"`
	Native          int64 `json:"native"`
	Pacific         int64 `json:"pacific"`
	TotalPopulation int64 `json:"total_population"`

	// Derived fields, populated once per snapshot version
	DemPct         Metric `json:"dem_pct"`
	RepPct         Metric `json:"rep_pct"`
	PartisanMargin Metric `json:"partisan_margin"`

	HispanicPct Metric `json:"hispanic_pct"`
	BlackPct    Metric `json:"black_pct"`
	AsianPct    Metric `json:"asian_pct"`
	NativePct   Metric `json:"native_pct"`
	PacificPct  Metric `json:"pacific_pct"`
	MinorityPct Metric `json:"minority_pct"`
}

// Dataset is the process-wide snapshot: loaded once, derived once, then shared
// read-only across all sessions.
type Dataset struct {
	Version   string           `json:"version"`
	Districts []DistrictRecord `json:"districts"`
}

// States returns the sorted, deduplicated list of state names in the snapshot.
func (ds *Dataset) States() []string {
	seen := make(map[string]bool)
	var states []string
	for _, d := range ds.Districts {
		if !seen[d.State] {
			seen[d.State] = true
			states = append(states, d.State)
		}
	}
	sort.Strings(states)
	return states
}

// HasState reports whether the snapshot contains any district for the state.
func (ds *Dataset) HasState(name string) bool {
	for _, d := range ds.Districts {
		if d.State == name {
			return true
		}
	}
	return false
}

// Validate checks the count invariants the loaders promise: no negative
// counts, votes within total votes, category sums within total population.
func (ds *Dataset) Validate() error {
	for _, d := range ds.Districts {
		if d.State == "" {
			return fmt.Errorf("district %s: missing state name", d.DistrictNumber)
		}
		if d.DemVotes < 0 || d.RepVotes < 0 || d.TotalVotes < 0 || d.TotalPopulation < 0 ||
			d.Hispanic < 0 || d.Black < 0 || d.Asian < 0 || d.Native < 0 || d.Pacific < 0 {
			return fmt.Errorf("district %s-%s: negative count", d.State, d.DistrictNumber)
		}
		if d.DemVotes+d.RepVotes > d.TotalVotes {
			return fmt.Errorf("district %s-%s: dem+rep votes %d exceed total %d",
				d.State, d.DistrictNumber, d.DemVotes+d.RepVotes, d.TotalVotes)
		}
		if d.Hispanic+d.Black+d.Asian+d.Native+d.Pacific > d.TotalPopulation {
			return fmt.Errorf("district %s-%s: minority counts exceed total population %d",
				d.State, d.DistrictNumber, d.TotalPopulation)
		}
	}
	return nil
}
