package handlers

import (
	"log"
	"net/http"
)

// respondWithError logs err (when set) with the failing status and writes
// userMsg as a plain-text response. Error responses are never cached.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s (%d): %v", logMsg, status, err)
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Error(w, userMsg, status)
}
