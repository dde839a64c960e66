package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the {success:false, message} envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, domain.StatusResponse{Success: false, Message: message})
}
