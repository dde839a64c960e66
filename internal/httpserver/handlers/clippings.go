package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

// maxCollectionBytes bounds the PUT body.
const maxCollectionBytes = 10 << 20

// GetClippings returns the whole collection, [] when nothing is stored.
func GetClippings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Store.All()
		d.Logger.Debug("retrieved clippings", logger.Int("count", len(all)))
		writeJSON(w, http.StatusOK, all)
	}
}

// PutClippings replaces the whole collection.
func PutClippings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCollectionBytes))
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeError(w, http.StatusRequestEntityTooLarge, "Collection too large")
				return
			}
			writeError(w, http.StatusBadRequest, "Failed to read request body")
			return
		}

		c, err := decodeCollection(body)
		if err != nil {
			d.Logger.Warn("rejected clippings payload", logger.Error(err))
			writeError(w, http.StatusBadRequest, "Invalid clippings payload: "+err.Error())
			return
		}

		if err := d.Store.Replace(r.Context(), c); err != nil {
			d.Logger.Error("error saving clippings", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to save clippings: "+err.Error())
			return
		}

		writeJSON(w, http.StatusOK, domain.StatusResponse{
			Success: true,
			Message: fmt.Sprintf("Clippings saved successfully (%d items)", len(c)),
		})
	}
}

func decodeCollection(body []byte) (domain.Collection, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("body must be a JSON array")
	}

	var c domain.Collection
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return nil, err
	}
	if !c.HasUniqueIDs() {
		return nil, errors.New("clipping ids must be unique")
	}
	return c.Clone(), nil
}
