package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// maxBodyBytes bounds how much page content is read for enrichment.
const maxBodyBytes = 512 * 1024

// Client retrieves raw product page content. Marketplaces throttle
// aggressively, so outbound requests go through a shared rate limiter.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	logger      *zap.Logger
}

// NewClient creates a content-fetch client. requestsPerSecond bounds the
// outbound rate; zero or negative falls back to 1 rps.
func NewClient(requestsPerSecond float64, timeout time.Duration, logger *zap.Logger) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 3),
		userAgent:   defaultUserAgent,
		logger:      logger,
	}
}

// Fetch retrieves the raw content at a location. Any failure, including a
// non-200 status, is reported as ErrNoContent: callers treat absence and
// error identically.
func (c *Client) Fetch(ctx context.Context, location string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoContent, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoContent, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("fetch failed", zap.String("location", location), zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrNoContent, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("fetch returned non-OK status",
			zap.String("location", location), zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", domain.ErrNoContent, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoContent, err)
	}
	if len(body) == 0 {
		return "", domain.ErrNoContent
	}
	return string(body), nil
}
