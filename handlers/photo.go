package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/camden-git/filmreel/archive"
	"github.com/camden-git/filmreel/models"
	"github.com/camden-git/filmreel/services"
	"github.com/camden-git/filmreel/utils"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

type PhotoHandler struct {
	Service *services.ArchiveService
}

type PhotoResponse struct {
	Photo          models.Photo `json:"photo"`
	StorageWarning string       `json:"storage_warning,omitempty"`
}

func (ph *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ph.Service.Photos())
}

func (ph *PhotoHandler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var req archive.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	photo, err := ph.Service.AddPhoto(r.Context(), req)
	ph.respondCreated(w, photo, err)
}

func (ph *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "missing_required_field", "missing required field: file")
		return
	}
	defer file.Close()

	if !utils.IsUploadableImage(header.Filename) {
		WriteAPIError(w, http.StatusUnsupportedMediaType, "unsupported_media", "Unsupported image type: "+header.Filename)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded frame %s: %v", header.Filename, err)
		WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Could not read uploaded file")
		return
	}

	in := archive.RecordInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		ReelYear:    r.FormValue("reelYear"),
		Camera:      r.FormValue("camera"),
		Film:        r.FormValue("film"),
		FStop:       r.FormValue("fStop"),
		Shutter:     r.FormValue("shutter"),
	}

	photo, err := ph.Service.UploadPhoto(r.Context(), data, in)
	ph.respondCreated(w, photo, err)
}

func (ph *PhotoHandler) respondCreated(w http.ResponseWriter, photo models.Photo, err error) {
	if err == nil {
		writeJSON(w, http.StatusCreated, PhotoResponse{Photo: photo})
		return
	}
	if archive.IsStorageKind(err, archive.WriteFailed) {
		writeJSON(w, http.StatusCreated, PhotoResponse{Photo: photo, StorageWarning: err.Error()})
		return
	}

	var ve *archive.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteAPIError(w, http.StatusBadRequest, string(ve.Kind), ve.Error())
	case errors.Is(err, archive.ErrDuplicateID):
		WriteAPIError(w, http.StatusConflict, "duplicate_id", "Photo id already exists")
	default:
		log.Printf("Error adding photo: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to add photo")
	}
}

// DeletePhoto removes a photo. The caller must pass confirm=true; anything
// else leaves the archive untouched.
func (ph *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "photo_id")

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !confirmed {
		WriteAPIError(w, http.StatusConflict, "confirmation_required", "Archive this frame permanently? Repeat the request with confirm=true")
		return
	}

	found, err := ph.Service.RemovePhoto(r.Context(), id)
	if !found {
		WriteAPIError(w, http.StatusNotFound, "not_found", "Photo not found")
		return
	}
	if err != nil {
		if archive.IsStorageKind(err, archive.WriteFailed) {
			writeJSON(w, http.StatusOK, map[string]string{"storage_warning": err.Error()})
			return
		}
		log.Printf("Error removing photo %s: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to remove photo")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
