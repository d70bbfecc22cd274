package handlers

import (
	"github.com/j-linarez/Southeastern-District-Analysis/analysis"
	"github.com/j-linarez/Southeastern-District-Analysis/config"
	"github.com/j-linarez/Southeastern-District-Analysis/models"
	"github.com/j-linarez/Southeastern-District-Analysis/session"
)

// filteredView is everything one filter state produces: the filtered row set
// and the tables each chart reads. It has no identity of its own; it is always
// a function of (snapshot, filter state), which is why it can be memoized by
// filter-state fingerprint.
type filteredView struct {
	State session.FilterState

	// Rows passed both filter predicates.
	Rows []models.DistrictRecord
	// StateRows passed only the state filter. The vote-composition chart
	// pools every district of the selected states regardless of band, as
	// the original dashboard does.
	StateRows []models.DistrictRecord

	Overview    analysis.Overview
	Composition []analysis.StateVoteComposition
	Summary     []analysis.StateSummary

	Correlation    *analysis.CorrelationTable
	CorrelationErr error
}

// viewFor computes (or recalls) the filtered view for a filter state. The
// snapshot is immutable, so a cached view keyed by snapshot version plus
// filter fingerprint never goes stale.
func viewFor(fs session.FilterState) *filteredView {
	key := config.GetCacheKey("view", dataset.Version, fs.Fingerprint())
	if cached, found := config.ViewCache.Get(key); found {
		return cached.(*filteredView)
	}

	selected := fs.SelectedSet()
	rows := analysis.FilterRows(dataset.Districts, selected, fs.MinorityBand, settings.BandThresholds)
	stateRows := analysis.FilterRows(dataset.Districts, selected, analysis.BandAll, settings.BandThresholds)

	view := &filteredView{
		State:       fs,
		Rows:        rows,
		StateRows:   stateRows,
		Overview:    analysis.Summarize(rows),
		Composition: analysis.AggregateByState(stateRows),
		Summary:     analysis.SummaryByState(rows),
	}
	view.Correlation, view.CorrelationErr = analysis.Correlate(rows, settings.RowCountFloor)

	config.ViewCache.SetDefault(key, view)
	return view
}

// currentView resolves the request's session to its memoized view.
func currentView(id string) *filteredView {
	return viewFor(sessions.Snapshot(id))
}
