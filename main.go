package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/cors"

	"github.com/j-linarez/Southeastern-District-Analysis/analysis"
	"github.com/j-linarez/Southeastern-District-Analysis/config"
	"github.com/j-linarez/Southeastern-District-Analysis/handlers"
	"github.com/j-linarez/Southeastern-District-Analysis/loader"
	"github.com/j-linarez/Southeastern-District-Analysis/middleware"
	"github.com/j-linarez/Southeastern-District-Analysis/models"
	"github.com/j-linarez/Southeastern-District-Analysis/session"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Dataset struct {
		Source    string `json:"source"`
		Version   string `json:"version"`
		Districts int    `json:"districts"`
		States    int    `json:"states"`
	} `json:"dataset"`
	DBStatus string `json:"db_status,omitempty"`
	Error    string `json:"error,omitempty"`
}

func healthCheck(settings config.Settings, ds *models.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{Status: "ok"}
		response.Dataset.Source = settings.DataSource
		response.Dataset.Version = ds.Version
		response.Dataset.Districts = len(ds.Districts)
		response.Dataset.States = len(ds.States())

		switch settings.DataSource {
		case "postgres":
			if err := config.CheckPostgresHealth(); err != nil {
				response.Status = "error"
				response.DBStatus = "connection_error"
				response.Error = err.Error()
			} else {
				response.DBStatus = "connected"
			}
		case "mongo":
			if err := config.CheckMongoHealth(); err != nil {
				response.Status = "error"
				response.DBStatus = "connection_error"
				response.Error = err.Error()
			} else {
				response.DBStatus = "connected"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// loadSnapshot fetches the raw dataset from the configured source. Any
// failure here is fatal: the schema is fixed and a backend without its
// snapshot has nothing to serve.
func loadSnapshot(settings config.Settings) (*models.Dataset, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch settings.DataSource {
	case "postgres":
		if err := config.InitDBWithRetry(5); err != nil {
			return nil, err
		}
		return loader.LoadPostgres(ctx, config.DB)
	case "mongo":
		if err := config.ConnectMongoWithRetry(5); err != nil {
			return nil, err
		}
		return loader.LoadMongo(ctx, config.MongoDB)
	default:
		return loader.LoadCSV(settings.DatasetLocation)
	}
}

// derivedDataset runs the metric derivation exactly once per snapshot
// version; repeat calls for the same version come from the cache.
func derivedDataset(raw *models.Dataset) *models.Dataset {
	key := config.GetCacheKey("derived", raw.Version)
	if cached, found := config.DatasetCache.Get(key); found {
		return cached.(*models.Dataset)
	}
	ds := analysis.Derive(raw)
	config.DatasetCache.Set(key, ds, gocache.NoExpiration)
	return ds
}

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	// Load environment variables first
	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("No PORT environment variable found, using default: %s", port)
	}

	settings := config.LoadSettings()
	log.Printf("Dataset source: %s", settings.DataSource)

	if settings.StateGroupsFile != "" {
		if err := config.LoadStateGroups(settings.StateGroupsFile); err != nil {
			log.Fatalf("Failed to load state groups: %v", err)
		}
	}

	config.InitCache()

	// Fetch and derive the snapshot once; everything downstream is
	// read-only.
	raw, err := loadSnapshot(settings)
	if err != nil {
		log.Fatalf("Failed to load dataset snapshot: %v", err)
	}
	defer config.CloseDB()
	log.Printf("Loaded snapshot %s: %d districts", raw.Version, len(raw.Districts))

	derived := derivedDataset(raw)
	registry := session.NewRegistry(session.NewManager(derived))
	handlers.Init(derived, registry, settings)
	log.Printf("Derived metrics ready for %d districts in %d states",
		len(derived.Districts), len(derived.States()))

	r := mux.NewRouter()

	// CORS configuration
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
			"http://127.0.0.1:3000",
			"https://districts.jlinarez.dev",
			"https://www.districts.jlinarez.dev",
		},
		AllowedMethods: []string{
			"GET", "POST", "OPTIONS",
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Session-ID",
			"X-Requested-With",
			"Origin",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	// Apply middlewares in correct order. Compression sits outside recovery
	// so a recovered panic writes its 500 body through the still-open gzip
	// stream instead of appending plaintext after a flushed gzip frame.
	r.Use(middleware.CORSDebugMiddleware)
	r.Use(corsHandler.Handler)
	r.Use(middleware.CompressHandler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api)
	log.Println("Routes registered successfully")

	// Health check endpoint
	api.HandleFunc("/health/detailed", healthCheck(settings, derived)).Methods("GET")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	log.Printf("Server is running at http://localhost:%s", port)
	log.Printf("Health check endpoint: http://localhost:%s/api/v1/health", port)

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router) {
	// Dataset routes
	api.HandleFunc("/districts", handlers.GetDistricts).Methods("GET", "OPTIONS")
	api.HandleFunc("/districts/filtered", handlers.GetFilteredDistricts).Methods("GET", "OPTIONS")

	// Filter state routes
	api.HandleFunc("/filters", handlers.GetFilterState).Methods("GET", "OPTIONS")
	api.HandleFunc("/filters/state-group", handlers.SetStateGroup).Methods("POST", "OPTIONS")
	api.HandleFunc("/filters/states", handlers.SetSelectedStates).Methods("POST", "OPTIONS")
	api.HandleFunc("/filters/minority-band", handlers.SetMinorityBand).Methods("POST", "OPTIONS")
	api.HandleFunc("/filters/demographic-focus", handlers.SetDemographicFocus).Methods("POST", "OPTIONS")
	api.HandleFunc("/filters/reset", handlers.ResetFilters).Methods("POST", "OPTIONS")

	// Chart table routes
	api.HandleFunc("/charts/overview", handlers.GetOverview).Methods("GET", "OPTIONS")
	api.HandleFunc("/charts/vote-composition", handlers.GetVoteComposition).Methods("GET", "OPTIONS")
	api.HandleFunc("/charts/state-summary", handlers.GetStateSummary).Methods("GET", "OPTIONS")
	api.HandleFunc("/charts/correlation", handlers.GetCorrelation).Methods("GET", "OPTIONS")

	// Option lists for the UI dropdowns
	api.HandleFunc("/meta/options", handlers.GetOptions).Methods("GET", "OPTIONS")

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
}
