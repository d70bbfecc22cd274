package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/j-linarez/Southeastern-District-Analysis/config"
	"github.com/j-linarez/Southeastern-District-Analysis/models"
	"github.com/j-linarez/Southeastern-District-Analysis/session"
)

var (
	// dataset is the derived snapshot: loaded and augmented once at
	// startup, read-only afterwards, shared by every session.
	dataset *models.Dataset
	// sessions owns each consumer's filter state.
	sessions *session.Registry
	settings config.Settings
)

// Init wires the handlers to the loaded snapshot and session registry.
func Init(ds *models.Dataset, reg *session.Registry, st config.Settings) {
	dataset = ds
	sessions = reg
	settings = st
}

// sessionID extracts the consumer's session id; absent means the shared
// default session.
func sessionID(r *http.Request) string {
	return r.Header.Get("X-Session-ID")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error": message,
		"code":  status,
	})
}
