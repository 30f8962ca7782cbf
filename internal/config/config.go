package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingToken возвращается, когда токен бота не задан
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

const (
	defaultMaxUploadMB     = 50
	defaultDownloadTimeout = 10 * time.Minute
	defaultMetadataTimeout = 20 * time.Second
)

// Config содержит конфигурацию бота
type Config struct {
	TelegramToken string
	// APIEndpoint в формате tgbotapi.APIEndpoint ("https://host/bot%s/%s").
	// Пустая строка означает официальный Bot API.
	APIEndpoint     string
	DownloadDir     string
	MaxUploadBytes  int64
	DownloadTimeout time.Duration
	MetadataTimeout time.Duration
	YtDlpPath       string
	Debug           bool
	Proxy           *ProxyConfig
}

// Load загружает конфигурацию из файла и переменных окружения.
// Отсутствующий файл не ошибка: переменные могут прийти из окружения процесса.
func Load(filename string) (*Config, error) {
	if filename != "" {
		if err := godotenv.Load(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", filename, err)
		}
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию только из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken:   firstEnv("TELEGRAM_BOT_TOKEN", "BOT_TOKEN"),
		APIEndpoint:     strings.TrimSpace(os.Getenv("TELEGRAM_API_URL")),
		DownloadDir:     os.Getenv("DOWNLOAD_DIR"),
		MaxUploadBytes:  defaultMaxUploadMB << 20,
		DownloadTimeout: defaultDownloadTimeout,
		MetadataTimeout: defaultMetadataTimeout,
		YtDlpPath:       strings.TrimSpace(os.Getenv("YTDLP_PATH")),
		Debug:           envBool("DEBUG", false),
		Proxy:           LoadProxyConfig(),
	}

	if cfg.TelegramToken == "" {
		return nil, ErrMissingToken
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = filepath.Join(os.TempDir(), "ytbot")
	}

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil || mb <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_MB: invalid value %q", v)
		}
		cfg.MaxUploadBytes = mb << 20
	}

	var err error
	if cfg.DownloadTimeout, err = envDuration("DOWNLOAD_TIMEOUT", defaultDownloadTimeout); err != nil {
		return nil, err
	}
	if cfg.MetadataTimeout, err = envDuration("METADATA_TIMEOUT", defaultMetadataTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, d)
	}
	return d, nil
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}
