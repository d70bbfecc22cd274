package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/j-linarez/Southeastern-District-Analysis/session"
)

type StateGroupRequest struct {
	StateGroup string `json:"state_group"`
}

type StatesRequest struct {
	States []string `json:"states"`
}

type MinorityBandRequest struct {
	MinorityBand string `json:"minority_band"`
}

type DemographicFocusRequest struct {
	DemographicFocus string `json:"demographic_focus"`
}

// GetFilterState returns the session's current filter state snapshot.
func GetFilterState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, sessions.Snapshot(sessionID(r)))
}

// applyEdit runs one setter against the session and writes either the new
// snapshot or a 400 that leaves the stored state untouched.
func applyEdit(w http.ResponseWriter, r *http.Request, fn func(session.FilterState) (session.FilterState, error)) {
	next, err := sessions.Update(sessionID(r), fn)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSelection) {
			log.Printf("Rejected filter edit: %v", err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Filter edit failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Error updating filter state")
		return
	}
	respondJSON(w, http.StatusOK, next)
}

// SetStateGroup changes the state-group dropdown. Picking a different group
// reseeds the explicit state list; re-picking the current one does not.
func SetStateGroup(w http.ResponseWriter, r *http.Request) {
	var req StateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mgr := sessions.Manager()
	applyEdit(w, r, func(s session.FilterState) (session.FilterState, error) {
		return mgr.SetStateGroup(s, req.StateGroup)
	})
}

// SetSelectedStates replaces the explicit state list.
func SetSelectedStates(w http.ResponseWriter, r *http.Request) {
	var req StatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mgr := sessions.Manager()
	applyEdit(w, r, func(s session.FilterState) (session.FilterState, error) {
		return mgr.SetSelectedStates(s, req.States)
	})
}

// SetMinorityBand changes the minority-percentage band filter.
func SetMinorityBand(w http.ResponseWriter, r *http.Request) {
	var req MinorityBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mgr := sessions.Manager()
	applyEdit(w, r, func(s session.FilterState) (session.FilterState, error) {
		return mgr.SetMinorityBand(s, req.MinorityBand)
	})
}

// SetDemographicFocus changes the scatter chart's demographic column.
func SetDemographicFocus(w http.ResponseWriter, r *http.Request) {
	var req DemographicFocusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mgr := sessions.Manager()
	applyEdit(w, r, func(s session.FilterState) (session.FilterState, error) {
		return mgr.SetDemographicFocus(s, req.DemographicFocus)
	})
}

// ResetFilters restores every filter field to its default atomically.
func ResetFilters(w http.ResponseWriter, r *http.Request) {
	mgr := sessions.Manager()
	applyEdit(w, r, func(s session.FilterState) (session.FilterState, error) {
		return mgr.Reset(s), nil
	})
}
