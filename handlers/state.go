package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/camden-git/filmreel/services"
	"github.com/camden-git/filmreel/transition"
)

type StateHandler struct {
	Service *services.ArchiveService
}

func (sh *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sh.Service.State())
}

func (sh *StateHandler) SelectYear(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year string `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	state, err := sh.Service.SelectYear(req.Year)
	if err != nil {
		if errors.Is(err, transition.ErrUnknownYear) {
			WriteAPIError(w, http.StatusBadRequest, "unknown_reel", "Reel not found: "+req.Year)
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to change reel")
		return
	}
	writeJSON(w, http.StatusAccepted, state)
}

func (sh *StateHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sh.Service.Scroll(req.Delta))
}

func (sh *StateHandler) ReturnToOrigin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sh.Service.ReturnToOrigin())
}
