package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// respondWithError writes a JSON error body and logs the underlying
// cause. Only userMsg ever reaches the client.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, map[string]string{"error": userMsg})
}

// respondWithJSON writes a JSON response with the given status
func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}
