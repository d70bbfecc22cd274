package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// LoadPostgres reads the snapshot from the districts table. The table carries
// the same columns as the CSV snapshot, one row per congressional district.
func LoadPostgres(ctx context.Context, db *sql.DB) (*models.Dataset, error) {
	rows, err := db.QueryContext(ctx, `
        SELECT state, cd_num,
               dem_votes, rep_votes, total_votes,
               hispanic, black, asian, native, pacific, total_population
        FROM districts
        ORDER BY state, cd_num`)
	if err != nil {
		return nil, &SchemaError{Source: "postgres", Reason: fmt.Sprintf("querying districts: %v", err)}
	}
	defer rows.Close()

	var districts []models.DistrictRecord
	for rows.Next() {
		var d models.DistrictRecord
		if err := rows.Scan(
			&d.State, &d.DistrictNumber,
			&d.DemVotes, &d.RepVotes, &d.TotalVotes,
			&d.Hispanic, &d.Black, &d.Asian, &d.Native, &d.Pacific,
			&d.TotalPopulation,
		); err != nil {
			return nil, &SchemaError{Source: "postgres", Reason: fmt.Sprintf("scanning district row: %v", err)}
		}
		districts = append(districts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading districts: %w", err)
	}

	return finalize("postgres", districts)
}
