package mw

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// reject writes the {success:false, message} envelope used by every API error.
func reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.StatusResponse{Success: false, Message: message})
}
