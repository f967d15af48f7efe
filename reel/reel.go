// Package reel holds the static configuration of the year reels.
package reel

import (
	"sort"

	"github.com/facette/natsort"
)

// Config is the display metadata for one reel.
type Config struct {
	Year            string `json:"year"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Note            string `json:"note"`
	Color           string `json:"color"`
	BackgroundImage string `json:"background_image,omitempty"` // filename under the backgrounds dir
}

var reels = map[string]Config{
	"2025": {
		Year:            "2025",
		Title:           "MEMORY",
		Subtitle:        "我要做一棵树",
		Note:            "TEXTURE OF TIME / ARCHIVE COLLECTION NO. 0042",
		Color:           "rgba(10, 10, 9, 0.85)",
		BackgroundImage: "2025-background.jpg",
	},
	"2024": {
		Year:     "2024",
		Title:    "ECHOES",
		Subtitle: "听见风的声音",
		Note:     "RESONANCE / CHRONICLE COLLECTION NO. 0039",
		Color:    "rgba(20, 18, 16, 0.85)",
	},
	"2023": {
		Year:     "2023",
		Title:    "ORIGIN",
		Subtitle: "万物生长的起点",
		Note:     "FOUNDATION / GENESIS COLLECTION NO. 0021",
		Color:    "rgba(12, 16, 18, 0.85)",
	},
}

// Years returns the configured reel years, newest first.
func Years() []string {
	years := make([]string, 0, len(reels))
	for y := range reels {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		return natsort.Compare(years[j], years[i])
	})
	return years
}

// Get returns the config for year.
func Get(year string) (Config, bool) {
	c, ok := reels[year]
	return c, ok
}

// IsValid reports whether year is one of the configured reels.
func IsValid(year string) bool {
	_, ok := reels[year]
	return ok
}

// Latest is the newest reel, used as the initial active year.
func Latest() string {
	return Years()[0]
}
