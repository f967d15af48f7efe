package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/camden-git/filmreel/archive"
	"github.com/camden-git/filmreel/config"
	"github.com/camden-git/filmreel/media"
	"github.com/camden-git/filmreel/models"
	"github.com/camden-git/filmreel/reel"
	"github.com/camden-git/filmreel/services"
	"github.com/camden-git/filmreel/transition"
)

type testSlot struct {
	data     map[string][]byte
	writeErr error
}

func (s *testSlot) Read(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *testSlot) Write(_ context.Context, key string, value []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.data[key] = value
	return nil
}

type staticCaption string

func (c staticCaption) Generate(context.Context, models.Collection) string { return string(c) }

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

type testEnv struct {
	handler http.Handler
	slot    *testSlot
	cfg     config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	slot := &testSlot{data: map[string][]byte{}}
	store := archive.NewStore(slot, archive.DefaultSlotKey)
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	// timers never fire, so the controller stays in whatever phase a request left it
	reels := transition.NewController("2025", transition.Options{
		Schedule:  func(time.Duration, func()) transition.Timer { return heldTimer{} },
		ValidYear: reel.IsValid,
	})

	mediaRoot := t.TempDir()
	cfg := config.Config{
		MediaStoragePath:   mediaRoot,
		FramesPath:         filepath.Join(mediaRoot, config.DefaultFramesSubDir),
		BackgroundsPath:    filepath.Join(mediaRoot, config.DefaultBackgroundsSubDir),
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
	mediaStore, err := media.NewLocalStorage(mediaRoot, map[media.AssetType]string{
		media.AssetTypeFrame:      config.DefaultFramesSubDir,
		media.AssetTypeBackground: config.DefaultBackgroundsSubDir,
	})
	if err != nil {
		t.Fatalf("media store: %v", err)
	}
	frames := media.NewProcessor(mediaStore, media.ImageProcessingOptions{MaxWidth: 8})

	svc := services.NewArchiveService(store, archive.NewFactory(), reels, nil, nil, staticCaption("grain and light"), frames)
	return &testEnv{handler: NewRouter(cfg, svc, nil), slot: slot, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp APIErrorResponse
	decode(t, rec, &resp)
	if len(resp.Errors) != 1 {
		t.Fatalf("expected one error, got %+v", resp)
	}
	return resp.Errors[0].Code
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListReels(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/reels", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var reels []services.ReelSummary
	decode(t, rec, &reels)
	if len(reels) != 3 {
		t.Fatalf("expected 3 reels, got %d", len(reels))
	}
	want := []struct {
		year  string
		count int
	}{{"2025", 2}, {"2024", 2}, {"2023", 1}}
	for i, w := range want {
		if reels[i].Year != w.year || reels[i].PhotoCount != w.count {
			t.Errorf("reel %d: got %s/%d, want %s/%d", i, reels[i].Year, reels[i].PhotoCount, w.year, w.count)
		}
	}
}

func TestGetReel(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/reels/2024", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view services.ReelView
	decode(t, rec, &view)
	if view.Title != "ECHOES" || len(view.Photos) != 2 {
		t.Fatalf("unexpected reel view: %+v", view)
	}

	rec = env.do(t, http.MethodGet, "/api/reels/1999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "unknown_reel" {
		t.Fatalf("expected unknown_reel, got %s", code)
	}
}

func TestGetCaption(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/reels/2023/caption", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	decode(t, rec, &resp)
	if resp["caption"] != "grain and light" || resp["year"] != "2023" {
		t.Fatalf("unexpected caption response: %+v", resp)
	}
}

func TestCreatePhoto_AppearsFirstInReel(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/photos", `{"url":"http://example.com/n.jpg","title":"New","reelYear":"2024"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created PhotoResponse
	decode(t, rec, &created)
	if created.StorageWarning != "" {
		t.Fatalf("unexpected storage warning: %s", created.StorageWarning)
	}
	if created.Photo.Location != archive.DefaultLocation || created.Photo.CameraSettings.Camera != archive.DefaultCamera {
		t.Fatalf("defaults not applied: %+v", created.Photo)
	}

	rec = env.do(t, http.MethodGet, "/api/reels/2024", "")
	var view services.ReelView
	decode(t, rec, &view)
	if len(view.Photos) != 3 || view.Photos[0].ID != created.Photo.ID {
		t.Fatalf("expected new photo first of 3, got %+v", view.Photos)
	}
	if _, ok := env.slot.data[archive.DefaultSlotKey]; !ok {
		t.Fatal("expected collection to be persisted")
	}
}

func TestCreatePhoto_DefaultsToActiveYear(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/photos", `{"url":"u","title":"t"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created PhotoResponse
	decode(t, rec, &created)
	if created.Photo.ReelYear != "2025" {
		t.Fatalf("expected active year 2025, got %s", created.Photo.ReelYear)
	}
}

func TestCreatePhoto_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing title", `{"url":"http://example.com/a.jpg","title":"   "}`, string(archive.MissingRequiredField)},
		{"missing url", `{"title":"A"}`, string(archive.MissingRequiredField)},
		{"unknown reel", `{"url":"u","title":"t","reelYear":"1999"}`, string(archive.InvalidReelYear)},
		{"bad json", `{"url":`, "invalid_body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(t, http.MethodPost, "/api/photos", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if code := errorCode(t, rec); code != tt.code {
				t.Fatalf("expected %s, got %s", tt.code, code)
			}
			if len(env.slot.data) != 0 {
				t.Fatal("rejected record must not be persisted")
			}
		})
	}
}

func TestCreatePhoto_WriteFailureIsWarning(t *testing.T) {
	env := newTestEnv(t)
	env.slot.writeErr = errors.New("quota exceeded")

	rec := env.do(t, http.MethodPost, "/api/photos", `{"url":"u","title":"t"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created PhotoResponse
	decode(t, rec, &created)
	if created.StorageWarning == "" {
		t.Fatal("expected a storage warning")
	}

	rec = env.do(t, http.MethodGet, "/api/photos", "")
	var photos models.Collection
	decode(t, rec, &photos)
	if len(photos) != 6 || photos[0].ID != created.Photo.ID {
		t.Fatalf("expected in-memory add to stand, got %d photos", len(photos))
	}
}

func TestDeletePhoto_RequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/photos/3", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "confirmation_required" {
		t.Fatalf("expected confirmation_required, got %s", code)
	}

	rec = env.do(t, http.MethodGet, "/api/photos", "")
	var photos models.Collection
	decode(t, rec, &photos)
	if len(photos) != 5 {
		t.Fatalf("declined delete changed the collection: %d photos", len(photos))
	}
}

func TestDeletePhoto_Confirmed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/photos/3?confirm=true", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/reels/2024", "")
	var view services.ReelView
	decode(t, rec, &view)
	for _, p := range view.Photos {
		if p.ID == "3" {
			t.Fatal("photo 3 still in the 2024 reel")
		}
	}

	rec = env.do(t, http.MethodDelete, "/api/photos/3?confirm=true", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a removed id, got %d", rec.Code)
	}
}

func TestSelectYear(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/state/year", `{"year":"2023"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	var state transition.State
	decode(t, rec, &state)
	if state.Phase != transition.TransitioningOut || state.TargetYear != "2023" || state.ActiveYear != "2025" {
		t.Fatalf("unexpected state: %+v", state)
	}

	rec = env.do(t, http.MethodPost, "/api/state/year", `{"year":"1999"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestScrollAndReturnToOrigin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/state/scroll", `{"delta":-40}`)
	var state transition.State
	decode(t, rec, &state)
	if state.ScrollOffset != 0 {
		t.Fatalf("scroll must clamp at 0, got %d", state.ScrollOffset)
	}

	rec = env.do(t, http.MethodPost, "/api/state/scroll", `{"delta":120}`)
	decode(t, rec, &state)
	if state.ScrollOffset != 120 {
		t.Fatalf("expected offset 120, got %d", state.ScrollOffset)
	}

	rec = env.do(t, http.MethodPost, "/api/state/origin", "")
	decode(t, rec, &state)
	if state.ScrollOffset != 0 {
		t.Fatalf("expected offset reset, got %d", state.ScrollOffset)
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadPhoto(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "frame.png")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(testPNG(t, 16, 10))
	mw.WriteField("title", "Uploaded")
	mw.WriteField("reelYear", "2023")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/photos/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created PhotoResponse
	decode(t, rec, &created)
	if !strings.HasPrefix(created.Photo.URL, "/api/frames/") || !strings.HasSuffix(created.Photo.URL, ".jpg") {
		t.Fatalf("unexpected frame url: %s", created.Photo.URL)
	}
	if created.Photo.ReelYear != "2023" || created.Photo.CameraSettings.Camera != archive.DefaultCamera {
		t.Fatalf("unexpected record: %+v", created.Photo)
	}

	rec = env.do(t, http.MethodGet, created.Photo.URL, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stored frame to be served, got %d", rec.Code)
	}
	if cfg, _, err := image.DecodeConfig(rec.Body); err != nil || cfg.Width != 8 {
		t.Fatalf("expected frame resized to width 8, got %+v (%v)", cfg, err)
	}
}

func TestUploadPhoto_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("title", "No file")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/photos/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadPhoto_RejectsUnsupportedType(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "notes.txt")
	part.Write([]byte("not an image"))
	mw.WriteField("title", "Text")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/photos/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}
