package fmp

import (
	"time"

	"github.com/wonny/cyberdash/pkg/config"
	"github.com/wonny/cyberdash/pkg/httputil"
	"github.com/wonny/cyberdash/pkg/logger"
	"github.com/wonny/cyberdash/pkg/redis"
)

const statementLimit = 6

// Client handles communication with the Financial Modeling Prep API. All
// FMP calls go through this client so rate limiting and caching apply
// uniformly.
type Client struct {
	http     *httputil.Client
	cache    *redis.Cache
	logger   *logger.Logger
	apiKey   string
	baseURL  string
	cacheTTL time.Duration
}

// New creates a new FMP API client. The shared HTTP client enforces the
// provider's request-per-second limit; cache may be backed by a disabled
// Redis client, in which case every call goes to the network.
func New(cfg *config.Config, cache *redis.Cache, log *logger.Logger) *Client {
	return &Client{
		http:     httputil.NewWithTimeout(log, 30*time.Second).WithRateLimit(cfg.FMP.RateLimit),
		cache:    cache,
		logger:   log,
		apiKey:   cfg.FMP.APIKey,
		baseURL:  cfg.FMP.BaseURL,
		cacheTTL: 24 * time.Hour,
	}
}
