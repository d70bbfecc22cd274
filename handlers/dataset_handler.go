package handlers

import (
	"net/http"

	"github.com/j-linarez/Southeastern-District-Analysis/models"
	"github.com/j-linarez/Southeastern-District-Analysis/session"
)

type DatasetResponse struct {
	Version   string                  `json:"version"`
	Districts []models.DistrictRecord `json:"districts"`
	States    []string                `json:"states"`
}

type FilteredDistrictsResponse struct {
	FilterState session.FilterState     `json:"filter_state"`
	FocusColumn string                  `json:"focus_column"`
	FocusValues []models.Metric         `json:"focus_values"`
	Districts   []models.DistrictRecord `json:"districts"`
}

// GetDistricts returns the full augmented dataset: every district with its
// derived fields. The UI never computes derived values itself.
func GetDistricts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	respondJSON(w, http.StatusOK, DatasetResponse{
		Version:   dataset.Version,
		Districts: dataset.Districts,
		States:    dataset.States(),
	})
}

// GetFilteredDistricts returns the session's filtered row set plus the column
// the demographic-focus dropdown resolves to, ready for the scatter chart.
func GetFilteredDistricts(w http.ResponseWriter, r *http.Request) {
	view := currentView(sessionID(r))

	focus := view.State.DemographicFocus
	values := make([]models.Metric, len(view.Rows))
	for i, d := range view.Rows {
		values[i] = focus.Value(d)
	}

	respondJSON(w, http.StatusOK, FilteredDistrictsResponse{
		FilterState: view.State,
		FocusColumn: focus.Column(),
		FocusValues: values,
		Districts:   view.Rows,
	})
}
