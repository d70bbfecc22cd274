package handlers

import (
	"errors"
	"net/http"

	"github.com/j-linarez/Southeastern-District-Analysis/analysis"
	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// displayDigits is the fixed presentation precision for correlation values.
// Rounding happens here and nowhere earlier, so no computation ever compounds
// rounding error.
const displayDigits = 2

type CorrelationResponse struct {
	InsufficientData bool `json:"insufficient_data"`
	RowCount         int  `json:"row_count"`
	RowCountFloor    int  `json:"row_count_floor"`

	Demographics []string          `json:"demographics,omitempty"`
	Metrics      []string          `json:"metrics,omitempty"`
	Values       [][]models.Metric `json:"values,omitempty"`
}

// GetOverview returns the KPI card values for the filtered set.
func GetOverview(w http.ResponseWriter, r *http.Request) {
	view := currentView(sessionID(r))
	respondJSON(w, http.StatusOK, view.Overview)
}

// GetVoteComposition returns the pooled per-state vote table behind the
// stacked bar chart. Percentages come from summed raw counts, so they answer
// "how did the state's total vote split", not "what does the average district
// look like" — that question belongs to GetStateSummary.
func GetVoteComposition(w http.ResponseWriter, r *http.Request) {
	view := currentView(sessionID(r))
	respondJSON(w, http.StatusOK, view.Composition)
}

// GetStateSummary returns the per-state means of the derived per-district
// margin and minority percentage.
func GetStateSummary(w http.ResponseWriter, r *http.Request) {
	view := currentView(sessionID(r))
	respondJSON(w, http.StatusOK, view.Summary)
}

// GetCorrelation returns the demographic-vs-voting correlation matrix, or an
// insufficient-data marker when the filtered set is too small for a
// correlation to mean anything. That marker is a normal 200 result, not an
// error: the consumer renders a warning instead of a chart.
func GetCorrelation(w http.ResponseWriter, r *http.Request) {
	view := currentView(sessionID(r))

	if view.CorrelationErr != nil {
		var insufficient *analysis.InsufficientDataError
		if errors.As(view.CorrelationErr, &insufficient) {
			respondJSON(w, http.StatusOK, CorrelationResponse{
				InsufficientData: true,
				RowCount:         insufficient.Rows,
				RowCountFloor:    insufficient.Floor,
			})
			return
		}
		respondError(w, http.StatusInternalServerError, "Error computing correlation")
		return
	}

	rounded := view.Correlation.Rounded(displayDigits)
	respondJSON(w, http.StatusOK, CorrelationResponse{
		InsufficientData: false,
		RowCount:         len(view.Rows),
		RowCountFloor:    settings.RowCountFloor,
		Demographics:     rounded.Demographics,
		Metrics:          rounded.Metrics,
		Values:           rounded.Values,
	})
}
