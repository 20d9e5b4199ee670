package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	MediaBackendFS = "fs"
	MediaBackendDB = "db"

	defaultBaseURL        = "localhost:8081"
	defaultMediaCacheSize = 256
	defaultMediaMaxSizeMB = 20
)

type Config struct {
	// Storage
	DatabaseDSN    string `env:"DATABASE_URI"`
	DataDir        string `env:"DATA_DIR"`
	MediaBackend   string `env:"MEDIA_BACKEND"`
	MediaDir       string `env:"MEDIA_DIR"`
	MediaCacheSize int    `env:"MEDIA_CACHE_SIZE"`
	MediaMaxSizeMB int    `env:"MEDIA_MAX_MB"`
	SessionFile    string `env:"SESSION_FILE"`

	// Local view API
	BaseURL string `env:"BASE_URL"`

	Debug       bool `env:"DEBUG"`
	SeedOnStart bool `env:"SEED_ON_START"`
}

// NewConfig собирает конфигурацию: .env, переменные окружения, затем флаги
// (флаг переопределяет значение из env), после чего заполняет умолчания.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (путь SQLite или postgres:// URL)")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "каталог данных на устройстве")
	flag.StringVar(&cfg.MediaBackend, "media-backend", cfg.MediaBackend, "хранилище медиа: fs или db")
	flag.StringVar(&cfg.MediaDir, "media-dir", cfg.MediaDir, "каталог медиафайлов (для fs)")
	flag.IntVar(&cfg.MediaCacheSize, "media-cache", cfg.MediaCacheSize, "размер кэша декодированных изображений")
	flag.IntVar(&cfg.MediaMaxSizeMB, "media-max-mb", cfg.MediaMaxSizeMB, "максимальный размер загружаемого медиафайла, МБ")
	flag.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "файл с активной поездкой")
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "адрес локального API (host:port)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "режим отладки")
	flag.BoolVar(&cfg.SeedOnStart, "seed", cfg.SeedOnStart, "создать демо-поездку при пустом хранилище")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	// BaseURL: только "address:port" без схемы и пути
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = os.TempDir()
		}
		cfg.DataDir = filepath.Join(base, "tripkeeper")
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = filepath.Join(cfg.DataDir, "trips.db")
	}

	cfg.MediaBackend = strings.ToLower(strings.TrimSpace(cfg.MediaBackend))
	if cfg.MediaBackend != MediaBackendDB {
		cfg.MediaBackend = MediaBackendFS
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = filepath.Join(cfg.DataDir, "media")
	}
	if cfg.MediaCacheSize <= 0 {
		cfg.MediaCacheSize = defaultMediaCacheSize
	}
	if cfg.MediaMaxSizeMB <= 0 {
		cfg.MediaMaxSizeMB = defaultMediaMaxSizeMB
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(cfg.DataDir, "active_trip")
	}
}
