package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/camden-git/filmreel/config"
	"github.com/camden-git/filmreel/services"
)

// NewRouter wires every HTTP route. ws serves the realtime event stream and
// may be nil.
func NewRouter(cfg config.Config, svc *services.ArchiveService, ws http.HandlerFunc) http.Handler {
	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler.Handler)

	photoHandler := &PhotoHandler{Service: svc}
	reelHandler := &ReelHandler{Service: svc}
	stateHandler := &StateHandler{Service: svc}

	r.Get("/healthz", HealthHandler)
	if ws != nil {
		r.Get("/ws", ws)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Route("/reels", func(r chi.Router) {
			r.Get("/", reelHandler.ListReels)
			r.Route("/{year}", func(r chi.Router) {
				r.Get("/", reelHandler.GetReel)
				r.Get("/caption", reelHandler.GetCaption)
			})
		})

		r.Route("/photos", func(r chi.Router) {
			r.Get("/", photoHandler.ListPhotos)
			r.Post("/", photoHandler.CreatePhoto)
			r.Post("/upload", photoHandler.UploadPhoto)
			r.Delete("/{photo_id}", photoHandler.DeletePhoto)
		})

		r.Route("/state", func(r chi.Router) {
			r.Get("/", stateHandler.GetState)
			r.Post("/year", stateHandler.SelectYear)
			r.Post("/scroll", stateHandler.Scroll)
			r.Post("/origin", stateHandler.ReturnToOrigin)
		})

		if cfg.MediaStoragePath != "" {
			framesSubDir := filepath.Base(cfg.FramesPath)
			r.Get("/"+framesSubDir+"/*", AssetServer(cfg.MediaStoragePath, framesSubDir, "/api/"+framesSubDir+"/"))
			log.Printf("Registered frame server at /api/%s/*", framesSubDir)

			backgroundsSubDir := filepath.Base(cfg.BackgroundsPath)
			r.Get("/"+backgroundsSubDir+"/*", AssetServer(cfg.MediaStoragePath, backgroundsSubDir, "/api/"+backgroundsSubDir+"/"))
			log.Printf("Registered background server at /api/%s/*", backgroundsSubDir)
		}
	})

	return r
}
