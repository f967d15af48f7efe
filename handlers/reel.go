package handlers

import (
	"errors"
	"net/http"

	"github.com/camden-git/filmreel/services"
	"github.com/go-chi/chi/v5"
)

type ReelHandler struct {
	Service *services.ArchiveService
}

func (rh *ReelHandler) ListReels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rh.Service.Reels())
}

func (rh *ReelHandler) GetReel(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")
	view, err := rh.Service.Reel(year)
	if err != nil {
		if errors.Is(err, services.ErrUnknownReel) {
			WriteAPIError(w, http.StatusNotFound, "unknown_reel", "Reel not found: "+year)
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to load reel")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (rh *ReelHandler) GetCaption(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")
	note, err := rh.Service.Caption(r.Context(), year)
	if err != nil {
		WriteAPIError(w, http.StatusNotFound, "unknown_reel", "Reel not found: "+year)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"year": year, "caption": note})
}
