package handlers

import (
	"net/http"

	"github.com/j-linarez/Southeastern-District-Analysis/analysis"
	"github.com/j-linarez/Southeastern-District-Analysis/config"
)

type OptionsResponse struct {
	StateGroups   []config.StateGroup `json:"state_groups"`
	States        []string            `json:"states"`
	MinorityBands []string            `json:"minority_bands"`
	Focuses       []string            `json:"demographic_focuses"`
	RowCountFloor int                 `json:"row_count_floor"`
	Thresholds    [3]float64          `json:"band_thresholds"`
}

// GetOptions returns every selectable value: the dropdowns render from this
// and never hard-code a domain.
func GetOptions(w http.ResponseWriter, r *http.Request) {
	bands := make([]string, len(analysis.Bands))
	for i, b := range analysis.Bands {
		bands[i] = string(b)
	}
	focuses := make([]string, len(analysis.Focuses))
	for i, f := range analysis.Focuses {
		focuses[i] = string(f)
	}

	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	respondJSON(w, http.StatusOK, OptionsResponse{
		StateGroups:   config.StateGroups,
		States:        dataset.States(),
		MinorityBands: bands,
		Focuses:       focuses,
		RowCountFloor: settings.RowCountFloor,
		Thresholds:    settings.BandThresholds,
	})
}
