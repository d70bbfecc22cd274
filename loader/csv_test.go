package loader

import (
	"errors"
	"strings"
	"testing"
)

const csvHeader = "State,CD_Num,E_16-20_COMP_Dem,E_16-20_COMP_Rep,E_16-20_COMP_Total," +
	"T_20_CENS_Hispanic,T_20_CENS_Black,T_20_CENS_Asian,T_20_CENS_Native,T_20_CENS_Pacific,T_20_CENS_Total"

func TestParseCSV(t *testing.T) {
	input := csvHeader + "\n" +
		"Georgia,1,120000,180000,320000,10000,50000,5000,1000,500,250000\n" +
		"Florida,7,150000.0,150000.0,305000.0,60000,30000,8000,1500,700,260000\n"

	ds, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Districts) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(ds.Districts))
	}
	if ds.Version == "" {
		t.Fatal("dataset version not stamped")
	}

	d := ds.Districts[0]
	if d.State != "Georgia" || d.DistrictNumber != "1" {
		t.Fatalf("wrong identity: %+v", d)
	}
	if d.DemVotes != 120000 || d.RepVotes != 180000 || d.TotalVotes != 320000 {
		t.Fatalf("wrong vote counts: %+v", d)
	}
	if d.TotalPopulation != 250000 {
		t.Fatalf("wrong population: %+v", d)
	}

	// Float-formatted counts parse to integers.
	if ds.Districts[1].DemVotes != 150000 {
		t.Fatalf("float count not parsed: %+v", ds.Districts[1])
	}
}

func TestParseCSVMissingColumns(t *testing.T) {
	input := "State,CD_Num,E_16-20_COMP_Dem\nGeorgia,1,100\n"

	_, err := ParseCSV(strings.NewReader(input))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if !strings.Contains(schemaErr.Reason, "E_16-20_COMP_Rep") {
		t.Fatalf("missing column not named: %v", schemaErr)
	}
}

func TestParseCSVMalformedCount(t *testing.T) {
	input := csvHeader + "\n" +
		"Georgia,1,abc,180000,320000,10000,50000,5000,1000,500,250000\n"

	_, err := ParseCSV(strings.NewReader(input))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("malformed count must be a SchemaError, got %v", err)
	}
}

func TestParseCSVInvariantViolation(t *testing.T) {
	// dem+rep exceed total votes
	input := csvHeader + "\n" +
		"Georgia,1,300000,300000,320000,10000,50000,5000,1000,500,250000\n"

	_, err := ParseCSV(strings.NewReader(input))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("count invariant violation must be a SchemaError, got %v", err)
	}
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(csvHeader + "\n"))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("a snapshot with no rows must be a SchemaError, got %v", err)
	}
}

func TestDatasetVersionDeterminism(t *testing.T) {
	input := csvHeader + "\n" +
		"Georgia,1,120000,180000,320000,10000,50000,5000,1000,500,250000\n"

	a, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := ParseCSV(strings.NewReader(input))
	if a.Version != b.Version {
		t.Fatalf("identical snapshots got different versions: %s != %s", a.Version, b.Version)
	}

	changed := csvHeader + "\n" +
		"Georgia,1,120001,180000,320000,10000,50000,5000,1000,500,250000\n"
	c, _ := ParseCSV(strings.NewReader(changed))
	if a.Version == c.Version {
		t.Fatal("different snapshots share a version")
	}
}
