package analysis

import (
	"encoding/json"
	"testing"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

func approx(got models.Metric, want float64, t *testing.T) {
	t.Helper()
	if !got.Defined() {
		t.Fatalf("expected %v, got undefined", want)
	}
	if diff := float64(got) - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected %v, got %v", want, float64(got))
	}
}

func testDataset() *models.Dataset {
	return &models.Dataset{
		Version: "test-v1",
		Districts: []models.DistrictRecord{
			{
				State: "Georgia", DistrictNumber: "1",
				DemVotes: 120000, RepVotes: 180000, TotalVotes: 320000,
				Hispanic: 10000, Black: 50000, Asian: 5000, Native: 1000, Pacific: 500,
				TotalPopulation: 250000,
			},
			{
				State: "Georgia", DistrictNumber: "2",
				DemVotes: 200000, RepVotes: 100000, TotalVotes: 310000,
				Hispanic: 20000, Black: 100000, Asian: 10000, Native: 2000, Pacific: 1000,
				TotalPopulation: 240000,
			},
			{
				State: "Florida", DistrictNumber: "7",
				DemVotes: 150000, RepVotes: 150000, TotalVotes: 305000,
				Hispanic: 60000, Black: 30000, Asian: 8000, Native: 1500, Pacific: 700,
				TotalPopulation: 260000,
			},
		},
	}
}

func TestDeriveComputesPercentages(t *testing.T) {
	ds := Derive(testDataset())
	d := ds.Districts[0]

	approx(d.DemPct, 120000.0/320000.0*100, t)
	approx(d.RepPct, 180000.0/320000.0*100, t)
	approx(d.PartisanMargin, (180000.0-120000.0)/320000.0*100, t)
	approx(d.MinorityPct, (10000.0+50000.0+5000.0+1000.0+500.0)/250000.0*100, t)
	approx(d.HispanicPct, 10000.0/250000.0*100, t)

	for _, d := range ds.Districts {
		if d.TotalVotes > 0 && float64(d.DemPct)+float64(d.RepPct) > 100 {
			t.Fatalf("district %s-%s: dem%%+rep%% = %v exceeds 100",
				d.State, d.DistrictNumber, float64(d.DemPct)+float64(d.RepPct))
		}
	}
}

func TestDeriveZeroDenominators(t *testing.T) {
	ds := Derive(&models.Dataset{
		Version: "zeros",
		Districts: []models.DistrictRecord{
			{State: "Georgia", DistrictNumber: "9", TotalVotes: 0, TotalPopulation: 0},
		},
	})
	d := ds.Districts[0]

	for name, m := range map[string]models.Metric{
		"dem_pct":         d.DemPct,
		"rep_pct":         d.RepPct,
		"partisan_margin": d.PartisanMargin,
		"minority_pct":    d.MinorityPct,
		"hispanic_pct":    d.HispanicPct,
	} {
		if m.Defined() {
			t.Fatalf("%s should be undefined on a zero denominator, got %v", name, float64(m))
		}
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	raw := testDataset()
	Derive(raw)
	if raw.Districts[0].DemPct.Defined() {
		t.Fatal("Derive mutated its input dataset")
	}
}

func TestDeriveIdempotent(t *testing.T) {
	a := Derive(testDataset())
	b := Derive(testDataset())
	for i := range a.Districts {
		if a.Districts[i] != b.Districts[i] {
			t.Fatalf("district %d differs between identical derivations", i)
		}
	}
}

// Serializing and reloading the augmented dataset must reproduce the derived
// fields exactly, including the undefined sentinel surviving as null.
func TestDerivedDatasetRoundTrip(t *testing.T) {
	ds := Derive(&models.Dataset{
		Version: "rt",
		Districts: append(testDataset().Districts,
			models.DistrictRecord{State: "Virginia", DistrictNumber: "0"}),
	})

	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back models.Dataset
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(back.Districts) != len(ds.Districts) {
		t.Fatalf("row count changed: %d != %d", len(back.Districts), len(ds.Districts))
	}
	for i := range ds.Districts {
		want, got := ds.Districts[i], back.Districts[i]
		if want.MinorityPct.Defined() != got.MinorityPct.Defined() {
			t.Fatalf("district %d: undefined minority_pct did not survive the round trip", i)
		}
		if want.MinorityPct.Defined() && want.MinorityPct != got.MinorityPct {
			t.Fatalf("district %d: minority_pct %v != %v", i, got.MinorityPct, want.MinorityPct)
		}
		if want.PartisanMargin.Defined() && want.PartisanMargin != got.PartisanMargin {
			t.Fatalf("district %d: partisan_margin %v != %v", i, got.PartisanMargin, want.PartisanMargin)
		}
	}
}
