package config

import (
	"os"
	"strconv"
)

// DefaultDatasetURL is the published snapshot the original dashboard reads.
const DefaultDatasetURL = "https://raw.githubusercontent.com/j-linarez/DataVizProject/refs/heads/main/Southeast%20Region%20Congressional%20Districts.csv"

// Settings holds the dashboard's static configuration. Everything here is
// fixed at startup; nothing in it changes per session.
type Settings struct {
	// Where the snapshot comes from: "csv", "postgres" or "mongo".
	DataSource string
	// CSV location: a URL or a local file path.
	DatasetLocation string

	// Correlation row-count floor; below it the engine reports
	// insufficient data instead of a matrix.
	RowCountFloor int

	// Minority-band boundaries splitting [0,100] into the four non-"All"
	// bands.
	BandThresholds [3]float64

	// Optional yaml file overriding the state-group membership table.
	StateGroupsFile string
}

// LoadSettings reads the dashboard configuration from the environment.
func LoadSettings() Settings {
	return Settings{
		DataSource:      getEnvWithDefault("DATA_SOURCE", "csv"),
		DatasetLocation: getEnvWithDefault("DATASET_LOCATION", DefaultDatasetURL),
		RowCountFloor:   getEnvAsInt("ROW_COUNT_FLOOR", 5),
		BandThresholds:  [3]float64{35, 50, 75},
		StateGroupsFile: os.Getenv("STATE_GROUPS_FILE"),
	}
}

// Database configuration
func getPostgresConnString() string {
	host := getEnvWithDefault("DB_HOST", "localhost")
	port := getEnvWithDefault("DB_PORT", "5432")
	user := getEnvWithDefault("DB_USER", "postgres")
	password := getEnvWithDefault("DB_PASSWORD", "1234")
	dbname := getEnvWithDefault("DB_NAME", "districts")

	return "host=" + host + " port=" + port + " user=" + user +
		" password=" + password + " dbname=" + dbname + " sslmode=disable"
}

func getMongoURI() string {
	return getEnvWithDefault("MONGO_URI", "mongodb://localhost:27017")
}

func getMongoDBName() string {
	return getEnvWithDefault("MONGO_DB_NAME", "districts")
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
