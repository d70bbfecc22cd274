package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/j-linarez/Southeastern-District-Analysis/analysis"
	"github.com/j-linarez/Southeastern-District-Analysis/config"
	"github.com/j-linarez/Southeastern-District-Analysis/models"
)

// ErrInvalidSelection marks a user edit outside a known domain: an unknown
// state-group label, a state absent from the snapshot, an unknown band or
// focus key. The edit is rejected and the prior filter state stands.
var ErrInvalidSelection = errors.New("invalid selection")

// InvalidSelectionError names the offending field and value.
type InvalidSelectionError struct {
	Field string
	Value string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection for %s: %q", e.Field, e.Value)
}

func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// FilterState is the per-session selection: state group, the explicit state
// list, minority band and demographic focus. It is a plain value; every
// Manager operation takes the current state and returns the next one, so no
// partial update is ever observable.
type FilterState struct {
	StateGroup       string                    `json:"state_group"`
	SelectedStates   []string                  `json:"selected_states"`
	MinorityBand     analysis.MinorityBand     `json:"minority_band"`
	DemographicFocus analysis.DemographicFocus `json:"demographic_focus"`
}

// SelectedSet returns the selected states as a membership set.
func (s FilterState) SelectedSet() map[string]bool {
	set := make(map[string]bool, len(s.SelectedStates))
	for _, st := range s.SelectedStates {
		set[st] = true
	}
	return set
}

// Fingerprint returns a stable cache key for this exact selection. Two states
// with the same fields produce the same fingerprint.
func (s FilterState) Fingerprint() string {
	return strings.Join([]string{
		s.StateGroup,
		string(s.MinorityBand),
		string(s.DemographicFocus),
		strings.Join(s.SelectedStates, ","),
	}, "|")
}

// Manager validates filter edits against the snapshot's state universe and
// the configured group table, and implements the group-change reseed rule.
type Manager struct {
	universe  map[string]bool
	allStates []string
}

// NewManager builds a manager for one loaded snapshot.
func NewManager(ds *models.Dataset) *Manager {
	states := ds.States()
	universe := make(map[string]bool, len(states))
	for _, st := range states {
		universe[st] = true
	}
	return &Manager{universe: universe, allStates: states}
}

// Default is the documented session start state: the universal group, every
// state selected, band All, focus Total Minority.
func (m *Manager) Default() FilterState {
	return FilterState{
		StateGroup:       config.AllStatesLabel,
		SelectedStates:   append([]string(nil), m.allStates...),
		MinorityBand:     analysis.BandAll,
		DemographicFocus: analysis.FocusTotalMinority,
	}
}

// Reset restores every field to its default in one transition.
func (m *Manager) Reset(FilterState) FilterState {
	return m.Default()
}

// SetStateGroup changes the group dropdown. Selecting a different group
// reseeds the state list with that group's membership (or every state for the
// universal group); re-selecting the current group leaves manual state edits
// untouched. The coupling between the two dropdowns is one-directional and
// fires only at the moment of group change.
func (m *Manager) SetStateGroup(s FilterState, label string) (FilterState, error) {
	group, ok := config.GroupByLabel(label)
	if !ok {
		return s, &InvalidSelectionError{Field: "state_group", Value: label}
	}
	if label == s.StateGroup {
		return s, nil
	}

	next := s
	next.StateGroup = label
	if group.States == nil {
		next.SelectedStates = append([]string(nil), m.allStates...)
	} else {
		// Group memberships are trusted configuration; a member state
		// with no districts in the snapshot simply matches no rows.
		next.SelectedStates = append([]string(nil), group.States...)
	}
	return next, nil
}

// SetSelectedStates replaces the explicit state list. Every name must exist
// in the snapshot; an empty list is allowed and matches no rows.
func (m *Manager) SetSelectedStates(s FilterState, states []string) (FilterState, error) {
	seen := make(map[string]bool, len(states))
	deduped := make([]string, 0, len(states))
	for _, st := range states {
		if !m.universe[st] {
			return s, &InvalidSelectionError{Field: "states", Value: st}
		}
		if seen[st] {
			continue
		}
		seen[st] = true
		deduped = append(deduped, st)
	}

	next := s
	next.SelectedStates = deduped
	return next, nil
}

// SetMinorityBand changes the minority-percentage band filter.
func (m *Manager) SetMinorityBand(s FilterState, band string) (FilterState, error) {
	if !analysis.ValidBand(band) {
		return s, &InvalidSelectionError{Field: "minority_band", Value: band}
	}
	next := s
	next.MinorityBand = analysis.MinorityBand(band)
	return next, nil
}

// SetDemographicFocus changes which demographic column the scatter chart uses.
func (m *Manager) SetDemographicFocus(s FilterState, focus string) (FilterState, error) {
	if !analysis.ValidFocus(focus) {
		return s, &InvalidSelectionError{Field: "demographic_focus", Value: focus}
	}
	next := s
	next.DemographicFocus = analysis.DemographicFocus(focus)
	return next, nil
}
