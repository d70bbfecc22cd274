package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// DefaultRowCountFloor is the minimum filtered row count below which no
// correlation is reported at all.
const DefaultRowCountFloor = 5

// ErrInsufficientData marks the typed "not enough rows" condition. Consumers
// check it with errors.Is and render a warning instead of a chart.
var ErrInsufficientData = errors.New("insufficient data for correlation")

// InsufficientDataError carries the counts behind ErrInsufficientData.
type InsufficientDataError struct {
	Rows  int
	Floor int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for correlation: %d rows, need at least %d", e.Rows, e.Floor)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// CorrelationTable is the dense demographic-vs-voting correlation matrix.
// Values[i][j] is Pearson r between Demographics[i] and Metrics[j], in
// [-1, 1], or undefined when the pair has too few defined points or zero
// variance.
type CorrelationTable struct {
	Demographics []string          `json:"demographics"`
	Metrics      []string          `json:"metrics"`
	Values       [][]models.Metric `json:"values"`
}

// Rounded returns a copy with every cell rounded for display. Rounding lives
// here, at the edge, so no downstream computation ever sees rounded values.
func (t *CorrelationTable) Rounded(digits int) *CorrelationTable {
	out := &CorrelationTable{
		Demographics: t.Demographics,
		Metrics:      t.Metrics,
		Values:       make([][]models.Metric, len(t.Values)),
	}
	for i, row := range t.Values {
		out.Values[i] = make([]models.Metric, len(row))
		for j, v := range row {
			out.Values[i][j] = v.Round(digits)
		}
	}
	return out
}

// voteMetrics are the columns of the correlation table.
var voteMetrics = []struct {
	name  string
	value func(models.DistrictRecord) models.Metric
}{
	{"dem_pct", func(d models.DistrictRecord) models.Metric { return d.DemPct }},
	{"rep_pct", func(d models.DistrictRecord) models.Metric { return d.RepPct }},
	{"partisan_margin", func(d models.DistrictRecord) models.Metric { return d.PartisanMargin }},
}

// pearson computes Pearson r over paired samples. Undefined when fewer than
// two pairs or when either side has zero variance.
func pearson(xs, ys []float64) models.Metric {
	n := len(xs)
	if n < 2 {
		return models.Undefined()
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return models.Undefined()
	}
	return models.Metric(cov / math.Sqrt(varX*varY))
}

// Correlate computes the Pearson correlation of every demographic percentage
// column against every vote metric over the filtered rows. Rows with an
// undefined value in either column of a pair are excluded pairwise, not
// dropped from the whole table. Fewer than floor rows returns
// InsufficientDataError, and the same floor applies again per pair after
// exclusion: a correlation on a handful of districts is noise and is not
// reported, whether the set shrank before or after filtering undefined
// values (two points always give r = ±1).
func Correlate(rows []models.DistrictRecord, floor int) (*CorrelationTable, error) {
	if floor <= 0 {
		floor = DefaultRowCountFloor
	}
	if len(rows) < floor {
		return nil, &InsufficientDataError{Rows: len(rows), Floor: floor}
	}

	table := &CorrelationTable{
		Demographics: make([]string, len(Focuses)),
		Metrics:      make([]string, len(voteMetrics)),
		Values:       make([][]models.Metric, len(Focuses)),
	}
	for j, m := range voteMetrics {
		table.Metrics[j] = m.name
	}

	for i, f := range Focuses {
		table.Demographics[i] = string(f)
		table.Values[i] = make([]models.Metric, len(voteMetrics))
		for j, m := range voteMetrics {
			var xs, ys []float64
			for _, d := range rows {
				x := f.Value(d)
				y := m.value(d)
				if !x.Defined() || !y.Defined() {
					continue
				}
				xs = append(xs, float64(x))
				ys = append(ys, float64(y))
			}
			if len(xs) < floor {
				table.Values[i][j] = models.Undefined()
				continue
			}
			table.Values[i][j] = pearson(xs, ys)
		}
	}
	return table, nil
}
