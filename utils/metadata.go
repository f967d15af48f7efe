package utils

import (
	"fmt"
	"image"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

type Metadata struct {
	Width        *int     `json:"width,omitempty"`
	Height       *int     `json:"height,omitempty"`
	Aperture     *float64 `json:"aperture,omitempty"`
	ShutterSpeed *string  `json:"shutter_speed,omitempty"`
	ISO          *int     `json:"iso,omitempty"`
	FocalLength  *float64 `json:"focal_length,omitempty"`
	CameraMake   *string  `json:"camera_make,omitempty"`
	CameraModel  *string  `json:"camera_model,omitempty"`
	TakenAt      *int64   `json:"taken_at,omitempty"`
}

// helper to safely get and convert a rational tag (like Aperture, FocalLength)
func getRational(exifData *exif.Exif, tagName exif.FieldName) *float64 {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		// sometimes stored as Int instead
		valInt, errInt := tag.Int(0)
		if errInt == nil {
			fVal := float64(valInt)
			return &fVal
		}
		return nil
	}
	val := float64(num) / float64(den)
	return &val
}

func getInt(exifData *exif.Exif, tagName exif.FieldName) *int {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	val, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &val
}

// helper to safely get a string tag, trimming quotes and null terminators
func getString(exifData *exif.Exif, tagName exif.FieldName) *string {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	val, err := tag.StringVal()
	if err != nil {
		val = tag.String()
	}
	val = strings.Trim(strings.TrimRight(val, "\x00"), `" `)
	if val == "" {
		return nil
	}
	return &val
}

func getShutterSpeed(exifData *exif.Exif) *string {
	tag, err := exifData.Get(exif.ExposureTime)
	if err != nil || tag == nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return nil
	}
	s := FormatShutter(num, den)
	return &s
}

// FormatShutter renders an exposure time the way it is printed on a frame, e.g. "1/125s".
func FormatShutter(num, den int64) string {
	if num == 1 && den > 1 {
		return fmt.Sprintf("1/%ds", den)
	}
	val := float64(num) / float64(den)
	if val >= 1.0 {
		return strconv.FormatFloat(val, 'f', -1, 64) + "s"
	}
	return fmt.Sprintf("1/%ds", int64(1/val+0.5))
}

// FormatAperture renders an f-number, e.g. "f/2.8" or "f/8".
func FormatAperture(f float64) string {
	return "f/" + strconv.FormatFloat(f, 'f', -1, 64)
}

// GetImageMetadata extracts dimensions and EXIF fields using goexif. Missing
// EXIF is not an error.
func GetImageMetadata(r io.ReadSeeker) (*Metadata, error) {
	config, format, err := image.DecodeConfig(r)
	var width, height *int
	if err == nil {
		w, h := config.Width, config.Height
		width = &w
		height = &h
		log.Printf("metadata: Decoded dimensions (format: %s): %dx%d", format, w, h)
	} else {
		log.Printf("metadata: Warning - Could not decode config for dimensions: %v", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("metadata: failed to seek: %w", err)
	}

	exifData, err := exif.Decode(r)
	if err != nil {
		log.Printf("metadata: No EXIF data found or error decoding EXIF: %v", err)
		return &Metadata{Width: width, Height: height}, nil
	}

	meta := &Metadata{
		Width:        width,
		Height:       height,
		Aperture:     getRational(exifData, exif.FNumber),
		ShutterSpeed: getShutterSpeed(exifData),
		ISO:          getInt(exifData, exif.ISOSpeedRatings),
		FocalLength:  getRational(exifData, exif.FocalLength),
		CameraMake:   getString(exifData, exif.Make),
		CameraModel:  getString(exifData, exif.Model),
	}

	if dt, err := exifData.DateTime(); err == nil {
		ts := dt.Unix()
		meta.TakenAt = &ts
	}

	return meta, nil
}

// CameraName joins make and model, dropping the make when the model already carries it.
func (m *Metadata) CameraName() string {
	if m == nil {
		return ""
	}
	var mk, model string
	if m.CameraMake != nil {
		mk = *m.CameraMake
	}
	if m.CameraModel != nil {
		model = *m.CameraModel
	}
	switch {
	case model == "":
		return mk
	case mk == "" || strings.HasPrefix(strings.ToLower(model), strings.ToLower(mk)):
		return model
	default:
		return mk + " " + model
	}
}
