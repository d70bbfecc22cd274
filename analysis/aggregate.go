package analysis

import (
	"sort"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// StateVoteComposition is one row of the pooled vote-composition table behind
// the stacked bar chart. Percentages are derived from the summed raw counts,
// not averaged per district, so states with unevenly sized districts report
// the composition of the pooled vote.
type StateVoteComposition struct {
	State      string        `json:"state"`
	DemVotes   int64         `json:"dem_votes"`
	RepVotes   int64         `json:"rep_votes"`
	TotalVotes int64         `json:"total_votes"`
	DemPct     models.Metric `json:"dem_pct"`
	RepPct     models.Metric `json:"rep_pct"`
	OtherPct   models.Metric `json:"other_pct"`
}

// AggregateByState sums raw vote counts per state and derives percentages from
// the sums. Summing before deriving makes the result invariant under district
// splits and row reordering. Empty input returns an empty table.
func AggregateByState(rows []models.DistrictRecord) []StateVoteComposition {
	type sums struct {
		dem, rep, total int64
	}
	byState := make(map[string]*sums)
	for _, d := range rows {
		s, ok := byState[d.State]
		if !ok {
			s = &sums{}
			byState[d.State] = s
		}
		s.dem += d.DemVotes
		s.rep += d.RepVotes
		s.total += d.TotalVotes
	}

	out := make([]StateVoteComposition, 0, len(byState))
	for state, s := range byState {
		row := StateVoteComposition{
			State:      state,
			DemVotes:   s.dem,
			RepVotes:   s.rep,
			TotalVotes: s.total,
			DemPct:     pct(s.dem, s.total),
			RepPct:     pct(s.rep, s.total),
		}
		if row.DemPct.Defined() && row.RepPct.Defined() {
			row.OtherPct = 100 - row.DemPct - row.RepPct
		} else {
			row.OtherPct = models.Undefined()
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

// StateSummary is one row of the summary-statistics table: unweighted means of
// the already-derived per-district values. This intentionally differs from
// AggregateByState — it answers "what does a typical district in this state
// look like", while the pooled aggregate answers "how did the state's total
// vote split".
type StateSummary struct {
	State             string        `json:"state"`
	Districts         int           `json:"districts"`
	AvgPartisanMargin models.Metric `json:"avg_partisan_margin"`
	AvgMinorityPct    models.Metric `json:"avg_minority_pct"`
}

// mean averages the defined values, undefined when none are.
func mean(values []models.Metric) models.Metric {
	var sum float64
	var n int
	for _, v := range values {
		if v.Defined() {
			sum += float64(v)
			n++
		}
	}
	if n == 0 {
		return models.Undefined()
	}
	return models.Metric(sum / float64(n))
}

// SummaryByState averages per-district partisan margin and minority percentage
// for each state in the filtered set. Empty input returns an empty table.
func SummaryByState(rows []models.DistrictRecord) []StateSummary {
	margins := make(map[string][]models.Metric)
	minorities := make(map[string][]models.Metric)
	counts := make(map[string]int)
	for _, d := range rows {
		margins[d.State] = append(margins[d.State], d.PartisanMargin)
		minorities[d.State] = append(minorities[d.State], d.MinorityPct)
		counts[d.State]++
	}

	out := make([]StateSummary, 0, len(counts))
	for state, n := range counts {
		out = append(out, StateSummary{
			State:             state,
			Districts:         n,
			AvgPartisanMargin: mean(margins[state]),
			AvgMinorityPct:    mean(minorities[state]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

// Overview holds the dashboard's KPI card values for the filtered set.
type Overview struct {
	AvgPartisanMargin models.Metric `json:"avg_partisan_margin"`
	AvgMinorityPct    models.Metric `json:"avg_minority_pct"`
	Districts         int           `json:"districts"`
}

// Summarize computes the KPI cards. An empty filtered set reports undefined
// means and a zero count rather than NaN.
func Summarize(rows []models.DistrictRecord) Overview {
	margins := make([]models.Metric, 0, len(rows))
	minorities := make([]models.Metric, 0, len(rows))
	for _, d := range rows {
		margins = append(margins, d.PartisanMargin)
		minorities = append(minorities, d.MinorityPct)
	}
	return Overview{
		AvgPartisanMargin: mean(margins),
		AvgMinorityPct:    mean(minorities),
		Districts:         len(rows),
	}
}
