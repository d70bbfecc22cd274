package loader

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// districtDoc mirrors one document of the districts collection.
type districtDoc struct {
	State           *string `bson:"state"`
	CDNum           *string `bson:"cd_num"`
	DemVotes        *int64  `bson:"dem_votes"`
	RepVotes        *int64  `bson:"rep_votes"`
	TotalVotes      *int64  `bson:"total_votes"`
	Hispanic        *int64  `bson:"hispanic"`
	Black           *int64  `bson:"black"`
	Asian           *int64  `bson:"asian"`
	Native          *int64  `bson:"native"`
	Pacific         *int64  `bson:"pacific"`
	TotalPopulation *int64  `bson:"total_population"`
}

// LoadMongo reads the snapshot from the districts collection. A document
// missing any expected field is a SchemaError, not a skipped row.
func LoadMongo(ctx context.Context, db *mongo.Database) (*models.Dataset, error) {
	collection := db.Collection("districts")
	cursor, err := collection.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "state", Value: 1}, {Key: "cd_num", Value: 1}}))
	if err != nil {
		return nil, &SchemaError{Source: "mongo", Reason: fmt.Sprintf("querying districts: %v", err)}
	}
	defer cursor.Close(ctx)

	var districts []models.DistrictRecord
	for cursor.Next(ctx) {
		var doc districtDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, &SchemaError{Source: "mongo", Reason: fmt.Sprintf("decoding district document: %v", err)}
		}

		required := map[string]bool{
			"state":            doc.State != nil,
			"cd_num":           doc.CDNum != nil,
			"dem_votes":        doc.DemVotes != nil,
			"rep_votes":        doc.RepVotes != nil,
			"total_votes":      doc.TotalVotes != nil,
			"hispanic":         doc.Hispanic != nil,
			"black":            doc.Black != nil,
			"asian":            doc.Asian != nil,
			"native":           doc.Native != nil,
			"pacific":          doc.Pacific != nil,
			"total_population": doc.TotalPopulation != nil,
		}
		for field, present := range required {
			if !present {
				return nil, &SchemaError{Source: "mongo", Reason: fmt.Sprintf("district document missing field %s", field)}
			}
		}

		districts = append(districts, models.DistrictRecord{
			State:           *doc.State,
			DistrictNumber:  *doc.CDNum,
			DemVotes:        *doc.DemVotes,
			RepVotes:        *doc.RepVotes,
			TotalVotes:      *doc.TotalVotes,
			Hispanic:        *doc.Hispanic,
			Black:           *doc.Black,
			Asian:           *doc.Asian,
			Native:          *doc.Native,
			Pacific:         *doc.Pacific,
			TotalPopulation: *doc.TotalPopulation,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("reading districts collection: %w", err)
	}

	return finalize("mongo", districts)
}
