package archive

import (
	"strings"
	"time"

	"github.com/camden-git/filmreel/models"
	"github.com/camden-git/filmreel/reel"
	"github.com/google/uuid"
)

const (
	DefaultDescription = "A moment captured."
	DefaultLocation    = "Unknown"
	DefaultCamera      = "Handheld"
	DefaultFilm        = "Archive"
	DefaultFStop       = "f/---"
	DefaultShutter     = "---s"
)

// RecordInput is the raw content of the new-frame form.
type RecordInput struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ReelYear    string `json:"reelYear"`
	Camera      string `json:"camera"`
	Film        string `json:"film"`
	FStop       string `json:"fStop"`
	Shutter     string `json:"shutter"`
}

// Factory builds new records. All default substitution happens here.
type Factory struct {
	Now       func() time.Time
	NewID     func() string
	ValidYear func(string) bool
}

func NewFactory() *Factory {
	return &Factory{
		Now:       time.Now,
		NewID:     uuid.NewString,
		ValidYear: reel.IsValid,
	}
}

// CreateRecord validates in and fills defaults. currentYear is used when the
// input names no reel.
func (f *Factory) CreateRecord(in RecordInput, currentYear string) (models.Photo, error) {
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return models.Photo{}, &ValidationError{Kind: MissingRequiredField, Field: "url"}
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Photo{}, &ValidationError{Kind: MissingRequiredField, Field: "title"}
	}

	year := orDefault(in.ReelYear, currentYear)
	if !f.ValidYear(year) {
		return models.Photo{}, &ValidationError{Kind: InvalidReelYear, Field: "reelYear"}
	}

	return models.Photo{
		ID:          f.NewID(),
		URL:         url,
		Title:       title,
		Description: orDefault(in.Description, DefaultDescription),
		Date:        f.Now().UTC().Format("2006-01-02"),
		Location:    orDefault(in.Location, DefaultLocation),
		ReelYear:    year,
		CameraSettings: &models.CameraSettings{
			Camera:  orDefault(in.Camera, DefaultCamera),
			Film:    orDefault(in.Film, DefaultFilm),
			FStop:   orDefault(in.FStop, DefaultFStop),
			Shutter: orDefault(in.Shutter, DefaultShutter),
		},
	}, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
