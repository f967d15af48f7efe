package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/camden-git/filmreel/archive"
	"github.com/camden-git/filmreel/events"
	"github.com/camden-git/filmreel/media"
	"github.com/camden-git/filmreel/models"
	"github.com/camden-git/filmreel/realtime"
	"github.com/camden-git/filmreel/reel"
	"github.com/camden-git/filmreel/transition"
	"github.com/camden-git/filmreel/utils"
)

// ErrUnknownReel is returned for a year that has no reel configured.
var ErrUnknownReel = errors.New("unknown reel")

// Broadcaster pushes events to connected viewers
type Broadcaster interface {
	Broadcast(event realtime.Event)
}

// Captioner writes the curator's note for a set of photos
type Captioner interface {
	Generate(ctx context.Context, photos models.Collection) string
}

// FrameProcessor stores uploaded images
type FrameProcessor interface {
	ProcessFrame(data []byte) (*media.Frame, error)
	DeleteFrame(relativePath string) error
}

// ReelSummary is one entry of the reel index
type ReelSummary struct {
	reel.Config
	PhotoCount int `json:"photo_count"`
}

// ReelView is a reel with its photos in display order
type ReelView struct {
	reel.Config
	Photos models.Collection `json:"photos"`
}

// ArchiveService coordinates the collection, the reel controller and the
// outward notifications
type ArchiveService struct {
	store     *archive.Store
	factory   *archive.Factory
	reels     *transition.Controller
	hub       Broadcaster
	publisher events.Publisher
	captions  Captioner
	frames    FrameProcessor

	// FramesURLPrefix is the public URL prefix of stored frames, e.g. "/api/"
	FramesURLPrefix string
}

func NewArchiveService(
	store *archive.Store,
	factory *archive.Factory,
	reels *transition.Controller,
	hub Broadcaster,
	publisher events.Publisher,
	captions Captioner,
	frames FrameProcessor,
) *ArchiveService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ArchiveService{
		store:           store,
		factory:         factory,
		reels:           reels,
		hub:             hub,
		publisher:       publisher,
		captions:        captions,
		frames:          frames,
		FramesURLPrefix: "/api/",
	}
}

// Photos returns the full collection
func (s *ArchiveService) Photos() models.Collection {
	return s.store.Photos()
}

// Reels lists every configured reel with its photo count
func (s *ArchiveService) Reels() []ReelSummary {
	years := reel.Years()
	out := make([]ReelSummary, 0, len(years))
	for _, y := range years {
		cfg, _ := reel.Get(y)
		out = append(out, ReelSummary{Config: cfg, PhotoCount: len(s.store.Year(y))})
	}
	return out
}

// Reel returns one reel and its photos
func (s *ArchiveService) Reel(year string) (ReelView, error) {
	cfg, ok := reel.Get(year)
	if !ok {
		return ReelView{}, fmt.Errorf("reel %q: %w", year, ErrUnknownReel)
	}
	return ReelView{Config: cfg, Photos: s.store.Year(year)}, nil
}

// Caption writes the curator's note for a reel. It never fails for a known reel.
func (s *ArchiveService) Caption(ctx context.Context, year string) (string, error) {
	if !reel.IsValid(year) {
		return "", fmt.Errorf("reel %q: %w", year, ErrUnknownReel)
	}
	return s.captions.Generate(ctx, s.store.Year(year)), nil
}

// AddPhoto builds a record from form input and prepends it. The active reel
// is used when the input names none. A WriteFailed storage error comes back
// alongside the created photo.
func (s *ArchiveService) AddPhoto(ctx context.Context, in archive.RecordInput) (models.Photo, error) {
	p, err := s.factory.CreateRecord(in, s.reels.State().ActiveYear)
	if err != nil {
		return models.Photo{}, err
	}
	return s.add(ctx, p)
}

// UploadPhoto stores an uploaded image as a frame and adds a record for it.
// EXIF fields fill camera settings the form left blank.
func (s *ArchiveService) UploadPhoto(ctx context.Context, data []byte, in archive.RecordInput) (models.Photo, error) {
	if s.frames == nil {
		return models.Photo{}, errors.New("frame uploads are not enabled")
	}
	frame, err := s.frames.ProcessFrame(data)
	if err != nil {
		return models.Photo{}, fmt.Errorf("failed to process upload: %w", err)
	}

	in.URL = s.FramesURLPrefix + frame.RelativePath
	applyExif(&in, frame.Metadata)

	p, err := s.factory.CreateRecord(in, s.reels.State().ActiveYear)
	if err != nil {
		s.discardFrame(frame.RelativePath)
		return models.Photo{}, err
	}
	photo, err := s.add(ctx, p)
	if err != nil && !archive.IsStorageKind(err, archive.WriteFailed) {
		s.discardFrame(frame.RelativePath)
	}
	return photo, err
}

func applyExif(in *archive.RecordInput, meta *utils.Metadata) {
	if meta == nil {
		return
	}
	if strings.TrimSpace(in.Camera) == "" {
		in.Camera = meta.CameraName()
	}
	if strings.TrimSpace(in.FStop) == "" && meta.Aperture != nil {
		in.FStop = utils.FormatAperture(*meta.Aperture)
	}
	if strings.TrimSpace(in.Shutter) == "" && meta.ShutterSpeed != nil {
		in.Shutter = *meta.ShutterSpeed
	}
}

func (s *ArchiveService) add(ctx context.Context, p models.Photo) (models.Photo, error) {
	_, err := s.store.Add(ctx, p)
	if err != nil && !archive.IsStorageKind(err, archive.WriteFailed) {
		return models.Photo{}, err
	}

	s.broadcast(realtime.Event{Type: realtime.EventPhotoAdded, PhotoID: p.ID, ReelYear: p.ReelYear, Data: p})
	s.warnIfUnsaved(err)
	s.publish(ctx, events.QueuePhotoAdded, events.PhotoEvent{PhotoID: p.ID, ReelYear: p.ReelYear, Photo: &p})
	return p, err
}

// RemovePhoto deletes a photo. found is false when no photo had that id, in
// which case nothing changed.
func (s *ArchiveService) RemovePhoto(ctx context.Context, id string) (found bool, err error) {
	p, found, err := s.store.Take(ctx, id)
	if !found {
		return false, err
	}
	if err != nil && !archive.IsStorageKind(err, archive.WriteFailed) {
		return true, err
	}

	if rel, ok := strings.CutPrefix(p.URL, s.FramesURLPrefix); ok && s.frames != nil {
		s.discardFrame(rel)
	}

	s.broadcast(realtime.Event{Type: realtime.EventPhotoRemoved, PhotoID: id, ReelYear: p.ReelYear})
	s.warnIfUnsaved(err)
	s.publish(ctx, events.QueuePhotoRemoved, events.PhotoEvent{PhotoID: id, ReelYear: p.ReelYear})
	return true, err
}

// State returns the reel controller snapshot
func (s *ArchiveService) State() transition.State {
	return s.reels.State()
}

// SelectYear starts a transition to another reel
func (s *ArchiveService) SelectYear(year string) (transition.State, error) {
	return s.reels.RequestYearChange(year)
}

// Scroll moves the active reel
func (s *ArchiveService) Scroll(delta int) transition.State {
	return s.reels.Scroll(delta)
}

// ReturnToOrigin rewinds the active reel
func (s *ArchiveService) ReturnToOrigin() transition.State {
	return s.reels.ScrollToStart()
}

func (s *ArchiveService) warnIfUnsaved(err error) {
	if err == nil {
		return
	}
	log.Printf("Warning: archive change kept in memory but not persisted: %v", err)
	s.broadcast(realtime.Event{Type: realtime.EventStorageWarning, Error: err.Error()})
}

func (s *ArchiveService) broadcast(ev realtime.Event) {
	if s.hub != nil {
		s.hub.Broadcast(ev)
	}
}

func (s *ArchiveService) publish(ctx context.Context, queue string, ev events.PhotoEvent) {
	if err := s.publisher.Publish(ctx, queue, ev); err != nil {
		log.Printf("Warning: failed to publish %s for %s: %v", queue, ev.PhotoID, err)
	}
}

func (s *ArchiveService) discardFrame(relativePath string) {
	if err := s.frames.DeleteFrame(relativePath); err != nil {
		log.Printf("Warning: failed to delete frame %s: %v", relativePath, err)
	}
}
