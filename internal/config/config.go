package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

type Config struct {
	ListenPort      string        // ex: ":3001"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout, uploads included

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Record store
	DataFile       string        // path to clippings.json
	UploadDir      string        // directory receiving uploaded PDFs, served under /data/
	MaxUploadBytes int64         // upload size limit (default 10MB)
	CategoryFile   string        // optional YAML category list, empty = built-in 12 categories
	ReloadInterval time.Duration // how often clippings.json is re-read for out-of-band edits
	GCInterval     time.Duration // interval of the orphan upload collector
	OrphanGC       bool          // delete uploads no clipping references
	OrphanTTL      time.Duration // minimum age of an orphan before deletion
	CORSOrigin     string        // Access-Control-Allow-Origin value

	// Upload rate limiting (per client IP)
	UploadBurst     int
	UploadPerMinute int

	// Redis (optional mirror + query cache, empty addr = disabled)
	RedisAddr             string
	RedisUser             string
	RedisPassword         string
	RedisPasswordRequired bool
	RedisDB               int
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration
	RedisPoolSize         int
	RedisConnectTimeout   time.Duration // total time spent retrying
	RedisRetryInterval    time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold    int
	QueryCacheTTL         time.Duration

	AllowedHosts []string // optional, restrict ops endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CLIPPINGS_LISTEN_PORT", ":3001"),
		ShutdownTimeout: mustDuration("CLIPPINGS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("CLIPPINGS_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  getenv("CLIPPINGS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CLIPPINGS_PRETTY_LOG", true),

		// Record store
		DataFile:       getenv("CLIPPINGS_DATA_FILE", "clippings.json"),
		UploadDir:      getenv("CLIPPINGS_UPLOAD_DIR", "data"),
		MaxUploadBytes: getenvInt64("CLIPPINGS_MAX_UPLOAD_BYTES", domain.MaxUploadSize),
		CategoryFile:   getenv("CLIPPINGS_CATEGORY_FILE", ""),
		ReloadInterval: mustDuration("CLIPPINGS_RELOAD_INTERVAL", 30*time.Second),
		GCInterval:     mustDuration("CLIPPINGS_GC_INTERVAL", 24*time.Hour),
		OrphanGC:       mustBool("CLIPPINGS_ORPHAN_GC", false),
		OrphanTTL:      mustDuration("CLIPPINGS_ORPHAN_TTL", 30*24*time.Hour),
		CORSOrigin:     getenv("CLIPPINGS_CORS_ORIGIN", "*"),

		UploadBurst:     getenvInt("CLIPPINGS_UPLOAD_RATE_BURST", 10),
		UploadPerMinute: getenvInt("CLIPPINGS_UPLOAD_RATE_PER_MIN", 30),

		// Redis settings
		RedisAddr:             getenv("CLIPPINGS_REDIS_ADDR", ""),
		RedisUser:             getenv("CLIPPINGS_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("CLIPPINGS_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("CLIPPINGS_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("CLIPPINGS_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		QueryCacheTTL:         mustDuration("CLIPPINGS_QUERY_CACHE_TTL", 5*time.Minute),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("CLIPPINGS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("CLIPPINGS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("CLIPPINGS_TRUST_PROXY", false),
	}

	if err := cfg.Validate(); err != nil {
		panic("❌ FATAL: " + err.Error())
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate rejects combinations the daemon cannot run with.
func (c *Config) Validate() error {
	if c.RedisEnabled() && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("CLIPPINGS_REDIS_PASSWORD is required when CLIPPINGS_REDIS_PASSWORD_REQUIRED=true")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("CLIPPINGS_MAX_UPLOAD_BYTES must be > 0, got %d", c.MaxUploadBytes)
	}
	if c.ReloadInterval <= 0 || c.GCInterval <= 0 {
		return fmt.Errorf("reload and gc intervals must be > 0")
	}
	if c.DataFile == "" || c.UploadDir == "" {
		return fmt.Errorf("CLIPPINGS_DATA_FILE and CLIPPINGS_UPLOAD_DIR must not be empty")
	}
	return nil
}

// RedisEnabled reports whether a redis address was configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// ClientConfig drives the terminal client.
type ClientConfig struct {
	ServerURL    string        // base URL of the record store, ex: http://localhost:3001
	Username     string        // expected portal user id
	Password     string        // expected portal password
	HTTPTimeout  time.Duration // per request
	ProgressStep time.Duration // delay between simulated upload progress ticks
	PageSize     int
	LogLevel     string
}

func LoadClient() *ClientConfig {
	return &ClientConfig{
		ServerURL:    strings.TrimRight(getenv("CLIPPINGS_SERVER", "http://localhost:3001"), "/"),
		Username:     getenv("CLIPPINGS_USERNAME", "ntpc"),
		Password:     getenv("CLIPPINGS_PASSWORD", "admin123"),
		HTTPTimeout:  mustDuration("CLIPPINGS_HTTP_TIMEOUT", 30*time.Second),
		ProgressStep: mustDuration("CLIPPINGS_PROGRESS_STEP", 100*time.Millisecond),
		PageSize:     domain.PageSize,
		LogLevel:     getenv("CLIPPINGS_CLIENT_LOG_LEVEL", "warn"),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
