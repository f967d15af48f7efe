// Package caption writes the curator's note for a reel using the Gemini API.
// It never fails: any problem degrades to a fixed fallback note.
package caption

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/camden-git/filmreel/models"
)

const (
	// EmptyFallback is used when the model answers with no text.
	EmptyFallback = "A collection of moments suspended in time, where light meets memory in a chemical embrace."
	// ErrorFallback is used when the request fails for any reason.
	ErrorFallback = "The grain of these moments tells a story of light and time, captured through the lens of a wandering soul."

	temperature = 0.8
	topP        = 0.9
)

var errNoAPIKey = errors.New("no API key configured")

type Service struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint; empty uses the SDK default.
	BaseURL    string
	HTTPClient *http.Client

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewService(apiKey, model string, timeout time.Duration) *Service {
	return &Service{
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// BuildPrompt renders the curator prompt for photos.
func BuildPrompt(photos models.Collection) string {
	parts := make([]string, 0, len(photos))
	for _, p := range photos {
		film := "unknown film"
		if p.CameraSettings != nil && p.CameraSettings.Film != "" {
			film = p.CameraSettings.Film
		}
		parts = append(parts, fmt.Sprintf("%s: %s (Shot on %s)", p.Title, p.Description, film))
	}

	return `You are a professional art curator for a high-end photography gallery.
Analyze the following list of photos and write a short, poetic "Curator's Note" (2-3 sentences) in a nostalgic, film-inspired tone.
The note should describe the overall "vibe" or emotional resonance of this collection.

Photos: ` + strings.Join(parts, "; ")
}

// Generate returns a curator's note for photos.
func (s *Service) Generate(ctx context.Context, photos models.Collection) string {
	text, err := s.generate(ctx, BuildPrompt(photos))
	if err != nil {
		log.Printf("caption: generation failed: %v", err)
		return ErrorFallback
	}
	if strings.TrimSpace(text) == "" {
		return EmptyFallback
	}
	return strings.TrimSpace(text)
}

func (s *Service) genaiClient(ctx context.Context) (*genai.Client, error) {
	s.once.Do(func() {
		s.client, s.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      s.APIKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  s.HTTPClient,
			HTTPOptions: genai.HTTPOptions{BaseURL: s.BaseURL},
		})
	})
	return s.client, s.initErr
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if s.APIKey == "" {
		return "", errNoAPIKey
	}

	client, err := s.genaiClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, s.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](temperature),
		TopP:        genai.Ptr[float32](topP),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
