package models

// CameraSettings holds the exposure details printed on a frame's edge.
type CameraSettings struct {
	Camera  string `json:"camera"`
	Film    string `json:"film"`
	FStop   string `json:"fStop"`
	Shutter string `json:"shutter"`
}

// Photo is a single frame in the archive. Field names on the wire match the
// JSON the gallery front end has always persisted.
type Photo struct {
	ID             string          `json:"id"`
	URL            string          `json:"url"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Date           string          `json:"date"` // YYYY-MM-DD
	Location       string          `json:"location"`
	ReelYear       string          `json:"reelYear"`
	CameraSettings *CameraSettings `json:"cameraSettings,omitempty"`
}

// Collection is the full ordered list of photos, most recently added first.
type Collection []Photo
