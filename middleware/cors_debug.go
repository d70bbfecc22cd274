package middleware

import (
	"log"
	"net/http"
	"os"
)

// CORSDebugMiddleware logs origin/header detail for CORS troubleshooting.
// Enabled only when CORS_DEBUG is set; the chart UI and the backend usually
// run on different origins during development and this makes preflight
// failures visible.
func CORSDebugMiddleware(next http.Handler) http.Handler {
	debug := os.Getenv("CORS_DEBUG") != ""
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !debug {
			next.ServeHTTP(w, r)
			return
		}

		log.Printf("[CORS Debug] Request from Origin: %s", r.Header.Get("Origin"))
		log.Printf("[CORS Debug] Request Method: %s", r.Method)

		if r.Method == "OPTIONS" {
			log.Printf("[CORS Debug] Handling preflight request")
		}

		next.ServeHTTP(w, r)

		log.Printf("[CORS Debug] Response Headers: %v", w.Header())
	})
}
