package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// The snapshot's fixed column names, as published in the DataVizProject CSV.
const (
	colState      = "State"
	colCDNum      = "CD_Num"
	colDemVotes   = "E_16-20_COMP_Dem"
	colRepVotes   = "E_16-20_COMP_Rep"
	colTotalVotes = "E_16-20_COMP_Total"
	colHispanic   = "T_20_CENS_Hispanic"
	colBlack      = "T_20_CENS_Black"
	colAsian      = "T_20_CENS_Asian"
	colNative     = "T_20_CENS_Native"
	colPacific    = "T_20_CENS_Pacific"
	colTotalPop   = "T_20_CENS_Total"
)

var requiredColumns = []string{
	colState, colCDNum,
	colDemVotes, colRepVotes, colTotalVotes,
	colHispanic, colBlack, colAsian, colNative, colPacific, colTotalPop,
}

var httpClient = &http.Client{Timeout: 60 * time.Second}

// LoadCSV reads the snapshot from a URL or a local file path.
func LoadCSV(location string) (*models.Dataset, error) {
	var r io.ReadCloser
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		log.Printf("Fetching dataset snapshot from %s", location)
		resp, err := httpClient.Get(location)
		if err != nil {
			return nil, fmt.Errorf("fetching dataset: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching dataset: unexpected status %s", resp.Status)
		}
		r = resp.Body
	} else {
		log.Printf("Reading dataset snapshot from %s", location)
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("opening dataset file: %w", err)
		}
		r = f
	}
	defer r.Close()

	return ParseCSV(r)
}

// ParseCSV decodes the snapshot from CSV. Missing columns or unparseable
// count cells are SchemaErrors: the schema is fixed and a mismatch is fatal.
func ParseCSV(r io.Reader) (*models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &SchemaError{Source: "csv", Reason: fmt.Sprintf("reading header: %v", err)}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: "csv", Reason: "missing columns: " + strings.Join(missing, ", ")}
	}

	count := func(record []string, col string, line int) (int64, error) {
		raw := strings.TrimSpace(record[index[col]])
		if raw == "" {
			return 0, nil
		}
		// Census exports format some counts as floats.
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return 0, &SchemaError{Source: "csv", Reason: fmt.Sprintf("line %d: column %s: %q is not a count", line, col, raw)}
		}
		return int64(v + 0.5), nil
	}

	var districts []models.DistrictRecord
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &SchemaError{Source: "csv", Reason: fmt.Sprintf("line %d: %v", line, err)}
		}

		d := models.DistrictRecord{
			State:          strings.TrimSpace(record[index[colState]]),
			DistrictNumber: strings.TrimSpace(record[index[colCDNum]]),
		}
		fields := []struct {
			col string
			dst *int64
		}{
			{colDemVotes, &d.DemVotes},
			{colRepVotes, &d.RepVotes},
			{colTotalVotes, &d.TotalVotes},
			{colHispanic, &d.Hispanic},
			{colBlack, &d.Black},
			{colAsian, &d.Asian},
			{colNative, &d.Native},
			{colPacific, &d.Pacific},
			{colTotalPop, &d.TotalPopulation},
		}
		for _, f := range fields {
			v, err := count(record, f.col, line)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
		districts = append(districts, d)
	}

	return finalize("csv", districts)
}
