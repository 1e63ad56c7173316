package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/joho/godotenv"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Session     SessionConfig
	Recognition RecognitionConfig
	Upload      UploadConfig
	Archive     ArchiveConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings for the scan log.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// SessionConfig controls the cookie that binds a browser to its workspace.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// RecognitionConfig points at the food recognition service.
type RecognitionConfig struct {
	URL       string
	APIKey    string
	FieldName string
	Timeout   time.Duration
}

// Enabled reports whether a recognition service has been configured.
func (c RecognitionConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

// UploadConfig limits photo uploads.
type UploadConfig struct {
	MaxBytes      int64
	RatePerMinute float64
	Burst         int
}

// ArchiveConfig enables storing uploaded photos in S3.
type ArchiveConfig struct {
	Bucket string
	Region string
	Prefix string
}

// Enabled reports whether an archive bucket has been configured.
func (c ArchiveConfig) Enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

const (
	defaultUploadMaxBytes = 10 << 20
	defaultUploadRate     = 6
	defaultUploadBurst    = 3
)

// Load reads an optional .env file, then inspects the environment and builds
// a Config value. Variables already set in the environment win over .env.
func Load() (Config, error) {
	if err := loadDotEnv(firstNonEmpty(os.Getenv("ENV_FILE"), ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL:             firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_URL")),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		cfg.Database.UseMock = true
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Session = SessionConfig{
		Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
		CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "platecheck_session"),
		CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
		CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
	}

	cfg.Recognition = RecognitionConfig{
		URL:       strings.TrimSpace(os.Getenv("RECOGNITION_URL")),
		APIKey:    strings.TrimSpace(os.Getenv("RECOGNITION_API_KEY")),
		FieldName: firstNonEmpty(os.Getenv("RECOGNITION_FIELD"), "image"),
		Timeout:   parseDurationWithDefault(os.Getenv("RECOGNITION_TIMEOUT"), 60*time.Second),
	}

	cfg.Upload = UploadConfig{
		MaxBytes:      parseBytesWithDefault(os.Getenv("UPLOAD_MAX_BYTES"), defaultUploadMaxBytes),
		RatePerMinute: parseFloatWithDefault(os.Getenv("UPLOAD_RATE_PER_MINUTE"), defaultUploadRate),
		Burst:         parseIntWithDefault(os.Getenv("UPLOAD_BURST"), defaultUploadBurst),
	}

	cfg.Archive = ArchiveConfig{
		Bucket: strings.TrimSpace(os.Getenv("ARCHIVE_S3_BUCKET")),
		Region: firstNonEmpty(os.Getenv("ARCHIVE_S3_REGION"), os.Getenv("AWS_REGION")),
		Prefix: firstNonEmpty(os.Getenv("ARCHIVE_S3_PREFIX"), "uploads"),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Upload.MaxBytes <= 0 {
		return Config{}, fmt.Errorf("upload max bytes must be positive")
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseFloatWithDefault(value string, def float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

// parseBytesWithDefault accepts plain byte counts or sizes such as "10MB".
func parseBytesWithDefault(value string, def int64) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := datasize.ParseString(value)
	if err != nil {
		return def
	}
	return int64(parsed.Bytes())
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
