package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/camden-git/filmreel/archive"
	"github.com/camden-git/filmreel/caption"
	"github.com/camden-git/filmreel/config"
	"github.com/camden-git/filmreel/database"
	"github.com/camden-git/filmreel/events"
	"github.com/camden-git/filmreel/handlers"
	"github.com/camden-git/filmreel/media"
	"github.com/camden-git/filmreel/realtime"
	"github.com/camden-git/filmreel/reel"
	"github.com/camden-git/filmreel/services"
	"github.com/camden-git/filmreel/transition"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	for _, p := range []string{cfg.FramesPath, cfg.BackgroundsPath} {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	ctx := context.Background()

	slot, closeSlot, err := database.OpenSlot(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer func() {
		if err := closeSlot(); err != nil {
			log.Printf("Warning: Failed to close storage: %v", err)
		}
	}()

	store := archive.NewStore(slot, cfg.SlotKey)
	photos, err := store.Load(ctx)
	if err != nil {
		// the store has already fallen back to the seed collection
		log.Printf("Warning: Could not read saved archive, starting from seed: %v", err)
	}
	log.Printf("Loaded archive with %d photos (slot %q, backend %s)", len(photos), cfg.SlotKey, cfg.StorageBackend)

	hub := realtime.NewHub()
	go hub.Run()

	reels := transition.NewController(cfg.DefaultReelYear, transition.Options{
		OutDelay:  cfg.TransitionOutDelay,
		InDelay:   cfg.TransitionInDelay,
		ValidYear: reel.IsValid,
		Observer: func(s transition.State) {
			hub.Broadcast(realtime.Event{Type: realtime.EventTransitionChange, ReelYear: s.ActiveYear, Data: s})
		},
	})
	log.Printf("Active reel: %s (transition %v out / %v in)", cfg.DefaultReelYear, cfg.TransitionOutDelay, cfg.TransitionInDelay)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher = events.NewAMQPPublisher(cfg.AMQPURL)
		log.Printf("Publishing archive changes to AMQP")
	}
	defer publisher.Close()

	captions := caption.NewService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.CaptionTimeout)
	if cfg.GeminiAPIKey == "" {
		log.Printf("Warning: GEMINI_API_KEY not set, reel captions will use the fallback note")
	}

	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, map[media.AssetType]string{
		media.AssetTypeFrame:      filepath.Base(cfg.FramesPath),
		media.AssetTypeBackground: filepath.Base(cfg.BackgroundsPath),
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}
	frames := media.NewProcessor(mediaStore, media.ImageProcessingOptions{MaxWidth: cfg.FrameMaxWidth})
	log.Printf("Storing frames in: %s (max width %dpx)", cfg.FramesPath, cfg.FrameMaxWidth)

	svc := services.NewArchiveService(store, archive.NewFactory(), reels, hub, publisher, captions, frames)
	router := handlers.NewRouter(cfg, svc, hub.ServeWS)

	serverAddr := ":" + cfg.Port
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: listen: %v", err)
		}
	}()

	<-done
	log.Println("Shutdown signal received")

	reels.Stop()
	hub.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: graceful shutdown failed: %v", err)
		_ = server.Close()
	}
	log.Println("Server stopped")
}
