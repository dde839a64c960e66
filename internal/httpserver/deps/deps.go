package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/store"
	"github.com/MrSnakeDoc/clippings/internal/store/file"
)

// QueryCache caches rendered query responses. Implemented by the redis store.
type QueryCache interface {
	CacheQuery(ctx context.Context, query string, payload []byte, ttl time.Duration) error
	GetCachedQuery(ctx context.Context, query string) ([]byte, bool, error)
}

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time  // for testing, defaults to time.Now
	AllowedHosts    []string          // Host headers allowed on ops endpoints
	AllowedCIDRS    []string          // IPs allowed on ops endpoints
	TrustProxy      bool              // true if running behind a trusted reverse proxy
	Store           *store.Service    // collection: file + index + optional mirror
	Uploads         *file.Uploads     // uploaded PDFs
	Categories      domain.Categories // enumeration served by /api/categories
	MaxUploadBytes  int64             // multipart file size limit
	UploadBurst     int               // upload rate limit burst per IP
	UploadPerMinute int               // upload rate limit refill per IP
	QueryCache      QueryCache        // nil when redis is disabled
	QueryCacheTTL   time.Duration
	RedisClient     *redis.Client // nil when redis is disabled
	ReloadTrigger   chan struct{} // Channel to trigger manual file reload
}

// Now returns TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
