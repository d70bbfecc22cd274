package analysis

import (
	"testing"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

func voteDistrict(state, num string, dem, rep, total int64) models.DistrictRecord {
	d := models.DistrictRecord{
		State: state, DistrictNumber: num,
		DemVotes: dem, RepVotes: rep, TotalVotes: total,
	}
	d.DemPct = pct(dem, total)
	d.RepPct = pct(rep, total)
	if d.DemPct.Defined() && d.RepPct.Defined() {
		d.PartisanMargin = d.RepPct - d.DemPct
	} else {
		d.PartisanMargin = models.Undefined()
	}
	return d
}

func TestAggregateByStatePoolsCounts(t *testing.T) {
	rows := []models.DistrictRecord{
		voteDistrict("Georgia", "1", 100, 300, 400),
		voteDistrict("Georgia", "2", 300, 100, 500),
	}
	got := AggregateByState(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 state row, got %d", len(got))
	}
	g := got[0]
	if g.DemVotes != 400 || g.RepVotes != 400 || g.TotalVotes != 900 {
		t.Fatalf("pooled counts wrong: %+v", g)
	}
	approx(g.DemPct, 400.0/900.0*100, t)
	approx(g.RepPct, 400.0/900.0*100, t)
	approx(g.OtherPct, 100-400.0/900.0*100-400.0/900.0*100, t)
}

// Sum-then-derive is associative: reordering rows or splitting a district
// into two with the same totals must not change the state row.
func TestAggregateByStateInvariance(t *testing.T) {
	merged := []models.DistrictRecord{
		voteDistrict("Georgia", "1", 400, 400, 900),
		voteDistrict("Florida", "1", 50, 150, 210),
	}
	split := []models.DistrictRecord{
		voteDistrict("Florida", "1", 50, 150, 210),
		voteDistrict("Georgia", "1a", 100, 300, 400),
		voteDistrict("Georgia", "1b", 300, 100, 500),
	}

	a := AggregateByState(merged)
	b := AggregateByState(split)
	if len(a) != len(b) {
		t.Fatalf("state counts differ: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("state row %d differs under split/reorder:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

// The pooled aggregate and the per-district mean answer different questions
// and must disagree when district sizes are unequal.
func TestPooledAggregateDiffersFromMean(t *testing.T) {
	rows := []models.DistrictRecord{
		voteDistrict("Georgia", "1", 90, 10, 100),     // tiny district, D+80
		voteDistrict("Georgia", "2", 1000, 9000, 10000), // huge district, R+80
	}

	pooled := AggregateByState(rows)[0]
	summary := SummaryByState(rows)[0]

	pooledMargin := float64(pooled.RepPct) - float64(pooled.DemPct)
	meanMargin := float64(summary.AvgPartisanMargin)
	if diff := pooledMargin - meanMargin; diff < 1e-9 && diff > -1e-9 {
		t.Fatal("pooled margin and mean margin should differ with unequal district sizes")
	}
	// Unweighted mean of +80 and -80 margins.
	approx(summary.AvgPartisanMargin, 0, t)
}

func TestSummaryByStateSkipsUndefined(t *testing.T) {
	rows := []models.DistrictRecord{
		voteDistrict("Georgia", "1", 100, 300, 400),
		voteDistrict("Georgia", "2", 0, 0, 0), // undefined margin
	}
	got := SummaryByState(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 state, got %d", len(got))
	}
	if got[0].Districts != 2 {
		t.Fatalf("district count should include undefined rows, got %d", got[0].Districts)
	}
	approx(got[0].AvgPartisanMargin, 50, t)

	allUndefined := SummaryByState([]models.DistrictRecord{voteDistrict("Georgia", "1", 0, 0, 0)})
	if allUndefined[0].AvgPartisanMargin.Defined() {
		t.Fatal("mean over only undefined values should be undefined")
	}
}

func TestAggregatesOnEmptyInput(t *testing.T) {
	if got := AggregateByState(nil); len(got) != 0 {
		t.Fatalf("expected empty composition table, got %+v", got)
	}
	if got := SummaryByState(nil); len(got) != 0 {
		t.Fatalf("expected empty summary table, got %+v", got)
	}

	overview := Summarize(nil)
	if overview.Districts != 0 {
		t.Fatalf("expected 0 districts, got %d", overview.Districts)
	}
	if overview.AvgPartisanMargin.Defined() || overview.AvgMinorityPct.Defined() {
		t.Fatal("means over an empty set should be undefined, not zero or NaN")
	}
}

func TestSummarizeKPIs(t *testing.T) {
	rows := []models.DistrictRecord{
		voteDistrict("Georgia", "1", 100, 300, 400),
		voteDistrict("Florida", "1", 300, 100, 400),
	}
	rows[0].MinorityPct = 30
	rows[1].MinorityPct = 50

	got := Summarize(rows)
	if got.Districts != 2 {
		t.Fatalf("expected 2 districts, got %d", got.Districts)
	}
	approx(got.AvgPartisanMargin, 0, t)
	approx(got.AvgMinorityPct, 40, t)
}
