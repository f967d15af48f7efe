// Package archive owns the photo collection: loading it from a persistence
// slot, mutating it, and deriving the per-reel views.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/camden-git/filmreel/models"
)

// DefaultSlotKey is the name the collection has always been stored under.
const DefaultSlotKey = "archive_photos"

// Slot is a single-key persistence backend. Read reports found=false when
// nothing has been written under key yet.
type Slot interface {
	Read(ctx context.Context, key string) (value []byte, found bool, err error)
	Write(ctx context.Context, key string, value []byte) error
}

// Store is the single source of truth for the collection.
type Store struct {
	slot Slot
	key  string

	// writeMu is held from a mutation through its slot write, so the slot
	// always ends up with the latest collection.
	writeMu sync.Mutex

	mu     sync.RWMutex
	photos models.Collection
	views  map[string]models.Collection // memoized FilterByYear results, reset on mutation
}

func NewStore(slot Slot, key string) *Store {
	if key == "" {
		key = DefaultSlotKey
	}
	return &Store{
		slot:   slot,
		key:    key,
		photos: models.Collection{},
		views:  make(map[string]models.Collection),
	}
}

// Load reads the persisted collection once. When nothing is stored, or the
// stored value cannot be decoded, the seed collection is used instead. A
// returned error is informational: the store is usable either way.
func (s *Store) Load(ctx context.Context) (models.Collection, error) {
	photos, loadErr := s.read(ctx)

	s.mu.Lock()
	s.photos = photos
	s.views = make(map[string]models.Collection)
	s.mu.Unlock()

	return clone(photos), loadErr
}

func (s *Store) read(ctx context.Context) (models.Collection, error) {
	raw, found, err := s.slot.Read(ctx, s.key)
	if err != nil {
		return SeedPhotos(), &StorageError{Kind: ReadFailed, Key: s.key, Err: err}
	}
	if !found {
		log.Printf("archive: no persisted collection under %q, using seed data", s.key)
		return SeedPhotos(), nil
	}

	var photos models.Collection
	if err := json.Unmarshal(raw, &photos); err != nil {
		return SeedPhotos(), &StorageError{Kind: CorruptRead, Key: s.key, Err: err}
	}
	if photos == nil {
		photos = models.Collection{}
	}
	return photos, nil
}

// Photos returns a copy of the full collection.
func (s *Store) Photos() models.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.photos)
}

// Get looks up a photo by id.
func (s *Store) Get(id string) (models.Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.photos, id)
	if i < 0 {
		return models.Photo{}, false
	}
	return s.photos[i], true
}

// Year returns the photos of one reel. The result is shared with the memo
// and must not be modified.
func (s *Store) Year(year string) models.Collection {
	s.mu.RLock()
	view, ok := s.views[year]
	s.mu.RUnlock()
	if ok {
		return view
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if view, ok := s.views[year]; ok {
		return view
	}
	view = FilterByYear(s.photos, year)
	s.views[year] = view
	return view
}

// Add prepends p and persists. A WriteFailed StorageError means the photo
// is in memory but was not saved.
func (s *Store) Add(ctx context.Context, p models.Photo) (models.Collection, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if indexOf(s.photos, p.ID) >= 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("add photo %s: %w", p.ID, ErrDuplicateID)
	}
	next := Prepend(s.photos, p)
	s.replace(next)
	s.mu.Unlock()

	return clone(next), s.Persist(ctx, next)
}

// Remove drops the photo with the given id and persists. Unknown ids leave
// the collection unchanged and are not an error.
func (s *Store) Remove(ctx context.Context, id string) (models.Collection, error) {
	next, _, _, err := s.remove(ctx, id)
	return next, err
}

// Take removes the photo with the given id and returns it. found is false
// when no photo had that id; only one of several concurrent callers for the
// same id sees found=true.
func (s *Store) Take(ctx context.Context, id string) (photo models.Photo, found bool, err error) {
	_, photo, found, err = s.remove(ctx, id)
	return photo, found, err
}

func (s *Store) remove(ctx context.Context, id string) (models.Collection, models.Photo, bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := indexOf(s.photos, id)
	if i < 0 {
		current := clone(s.photos)
		s.mu.Unlock()
		return current, models.Photo{}, false, nil
	}
	removed := s.photos[i]
	next := Without(s.photos, id)
	s.replace(next)
	s.mu.Unlock()

	return clone(next), removed, true, s.Persist(ctx, next)
}

// Persist writes the whole collection to the slot. Empty collections are not written.
func (s *Store) Persist(ctx context.Context, c models.Collection) error {
	if len(c) == 0 {
		return nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return &StorageError{Kind: WriteFailed, Key: s.key, Err: err}
	}
	if err := s.slot.Write(ctx, s.key, raw); err != nil {
		return &StorageError{Kind: WriteFailed, Key: s.key, Err: err}
	}
	return nil
}

// replace must be called with mu held.
func (s *Store) replace(c models.Collection) {
	s.photos = c
	s.views = make(map[string]models.Collection)
}

func clone(c models.Collection) models.Collection {
	out := make(models.Collection, len(c))
	copy(out, c)
	return out
}
