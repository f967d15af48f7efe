package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/camden-git/filmreel/archive"
	"github.com/camden-git/filmreel/reel"
	"github.com/camden-git/filmreel/transition"
)

const (
	DefaultFramesSubDir      = "frames"
	DefaultBackgroundsSubDir = "backgrounds"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

const (
	defaultFrameMaxWidth  = 2000
	defaultGeminiModel    = "gemini-3-flash-preview"
	defaultCaptionTimeout = 20 * time.Second
)

type Config struct {
	Port string

	// persistence slot
	StorageBackend string
	SlotKey        string
	DatabasePath   string // sqlite
	StateDir       string // file
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisTLS       bool
	MongoURI       string
	MongoDatabase  string

	// media storage configuration
	MediaStoragePath string // root for uploaded frames and reel backgrounds
	FramesPath       string // full-calculated path for uploaded frames
	BackgroundsPath  string // full-calculated path for reel backgrounds
	FrameMaxWidth    int

	// reel transition timing
	DefaultReelYear    string
	TransitionOutDelay time.Duration
	TransitionInDelay  time.Duration

	// caption generation
	GeminiAPIKey   string
	GeminiModel    string
	CaptionTimeout time.Duration

	// change events, disabled when empty
	AMQPURL string

	CORSAllowedOrigins []string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvMillisOrDefault(envVar string, defaultVal time.Duration) time.Duration {
	ms := getEnvIntOrDefault(envVar, int(defaultVal/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

func getEnvBool(key string) bool {
	v := os.Getenv(key)
	return strings.EqualFold(v, "true") || v == "1"
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func LoadConfig() (Config, error) {
	backend := strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", BackendSQLite))
	switch backend {
	case BackendSQLite, BackendFile, BackendRedis, BackendMongo, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_BACKEND '%s'", backend)
	}

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	framesSubDir := getEnvOrDefault("FRAMES_SUBDIR", DefaultFramesSubDir)
	backgroundsSubDir := getEnvOrDefault("BACKGROUNDS_SUBDIR", DefaultBackgroundsSubDir)

	stateDir := getEnvOrDefault("STATE_DIR", filepath.Join(".", "state"))
	absStateDir, err := filepath.Abs(stateDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for state dir '%s': %w", stateDir, err)
	}

	defaultYear := getEnvOrDefault("DEFAULT_REEL_YEAR", reel.Latest())
	if !reel.IsValid(defaultYear) {
		return Config{}, fmt.Errorf("DEFAULT_REEL_YEAR '%s' is not a configured reel (have %s)", defaultYear, strings.Join(reel.Years(), ", "))
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		} else {
			log.Printf("Warning: Invalid REDIS_DB '%s'. Using 0.", v)
		}
	}

	apiKey := getEnvOrDefault("GEMINI_API_KEY", os.Getenv("API_KEY"))

	cfg := Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		StorageBackend:     backend,
		SlotKey:            getEnvOrDefault("SLOT_KEY", archive.DefaultSlotKey),
		DatabasePath:       getEnvOrDefault("DATABASE_PATH", "archive.db"),
		StateDir:           absStateDir,
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		RedisTLS:           getEnvBool("REDIS_TLS"),
		MongoURI:           getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnvOrDefault("MONGO_DATABASE", "filmreel"),
		MediaStoragePath:   absMediaStorage,
		FramesPath:         filepath.Join(absMediaStorage, framesSubDir),
		BackgroundsPath:    filepath.Join(absMediaStorage, backgroundsSubDir),
		FrameMaxWidth:      getEnvIntOrDefault("FRAME_MAX_WIDTH", defaultFrameMaxWidth),
		DefaultReelYear:    defaultYear,
		TransitionOutDelay: getEnvMillisOrDefault("TRANSITION_OUT_MS", transition.DefaultOutDelay),
		TransitionInDelay:  getEnvMillisOrDefault("TRANSITION_IN_MS", transition.DefaultInDelay),
		GeminiAPIKey:       apiKey,
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", defaultGeminiModel),
		CaptionTimeout:     getEnvMillisOrDefault("CAPTION_TIMEOUT_MS", defaultCaptionTimeout),
		AMQPURL:            getEnvOrDefault("AMQP_URL", os.Getenv("RABBITMQ_URL")),
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	return cfg, nil
}
