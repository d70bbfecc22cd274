// Package loader fetches the district snapshot once at process start. The
// schema is fixed; anything missing or malformed is a SchemaError and halts
// startup rather than being recovered per row.
package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// SchemaError is the fatal load-time error: the source does not carry the
// expected columns, or a row violates the count invariants.
type SchemaError struct {
	Source string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s source: %s", e.Source, e.Reason)
}

// datasetVersion fingerprints the raw rows. The derive cache is keyed on it,
// so two identical snapshots share one derived dataset.
func datasetVersion(districts []models.DistrictRecord) string {
	h := sha256.New()
	for _, d := range districts {
		fmt.Fprintf(h, "%s|%s|%d|%d|%d|%d|%d|%d|%d|%d|%d\n",
			d.State, d.DistrictNumber,
			d.DemVotes, d.RepVotes, d.TotalVotes,
			d.Hispanic, d.Black, d.Asian, d.Native, d.Pacific,
			d.TotalPopulation)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// finalize stamps the version and enforces the count invariants.
func finalize(source string, districts []models.DistrictRecord) (*models.Dataset, error) {
	if len(districts) == 0 {
		return nil, &SchemaError{Source: source, Reason: "no district rows"}
	}
	ds := &models.Dataset{
		Version:   datasetVersion(districts),
		Districts: districts,
	}
	if err := ds.Validate(); err != nil {
		return nil, &SchemaError{Source: source, Reason: err.Error()}
	}
	return ds, nil
}
