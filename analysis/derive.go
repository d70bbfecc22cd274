package analysis

import (
	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// pct computes part/total as a percentage, undefined when the denominator is
// zero.
func pct(part, total int64) models.Metric {
	if total == 0 {
		return models.Undefined()
	}
	return models.Metric(float64(part) / float64(total) * 100)
}

// Derive returns a copy of the dataset with every derived field populated:
// vote percentages, partisan margin, per-category percentages and the total
// minority percentage. It is a pure function of the raw counts; calling it
// again on the same snapshot yields identical values, so the result is safe to
// cache keyed on the snapshot version.
func Derive(ds *models.Dataset) *models.Dataset {
	out := &models.Dataset{
		Version:   ds.Version,
		Districts: make([]models.DistrictRecord, len(ds.Districts)),
	}
	copy(out.Districts, ds.Districts)

	for i := range out.Districts {
		d := &out.Districts[i]

		d.DemPct = pct(d.DemVotes, d.TotalVotes)
		d.RepPct = pct(d.RepVotes, d.TotalVotes)
		if d.DemPct.Defined() && d.RepPct.Defined() {
			d.PartisanMargin = d.RepPct - d.DemPct
		} else {
			d.PartisanMargin = models.Undefined()
		}

		d.HispanicPct = pct(d.Hispanic, d.TotalPopulation)
		d.BlackPct = pct(d.Black, d.TotalPopulation)
		d.AsianPct = pct(d.Asian, d.TotalPopulation)
		d.NativePct = pct(d.Native, d.TotalPopulation)
		d.PacificPct = pct(d.Pacific, d.TotalPopulation)

		minority := d.Hispanic + d.Black + d.Asian + d.Native + d.Pacific
		d.MinorityPct = pct(minority, d.TotalPopulation)
	}
	return out
}
