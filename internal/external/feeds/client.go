package feeds

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/pkg/config"
	"github.com/wonny/macrosig/pkg/httputil"
	"github.com/wonny/macrosig/pkg/logger"
)

// Client fetches upcoming economic events from calendar feeds
// ⭐ SSOT: 경제 캘린더 피드 호출은 이 클라이언트에서만
//
// Configured URLs are tried sequentially in priority order with a fixed
// delay between attempts, stopping at the first source that yields events.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.CalendarConfig
	loc        *time.Location
}

// NewClient creates a calendar feed client.
// The feed-local timezone must resolve; feed timestamps are naive local
// times and may never be compared against UTC without normalization.
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.CalendarConfig) (*Client, error) {
	loc, err := time.LoadLocation(cfg.LocalTimezone)
	if err != nil {
		return nil, fmt.Errorf("load feed timezone %s: %w", cfg.LocalTimezone, err)
	}

	httpClient.WithHeaders(map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		"Accept":     "text/xml, application/xml, text/html, */*",
	})

	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
		loc:        loc,
	}, nil
}

// FetchEvents retrieves raw events from the first source that responds.
// Individual malformed records inside a feed are skipped, not fatal.
func (c *Client) FetchEvents(ctx context.Context) ([]contracts.CalendarEvent, error) {
	var events []contracts.CalendarEvent

	attempts := make([]httputil.Attempt, 0, len(c.cfg.FeedURLs))
	for _, feedURL := range c.cfg.FeedURLs {
		feedURL := feedURL
		attempts = append(attempts, httputil.Attempt{
			Name: feedURL,
			Fn: func(ctx context.Context) error {
				body, err := c.httpClient.GetBody(ctx, feedURL)
				if err != nil {
					return err
				}

				parsed, err := c.parse(body)
				if err != nil {
					return err
				}
				if len(parsed) == 0 {
					return fmt.Errorf("feed returned no parsable events")
				}

				events = parsed
				return nil
			},
		})
	}

	source, err := httputil.TryInOrder(ctx, c.logger, c.cfg.SourceDelay, attempts)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"source": source,
		"count":  len(events),
	}).Debug("Fetched calendar events")

	return events, nil
}

// parse decodes a feed body, sniffing the format.
// XML weekly feeds are the primary shape; HTML tables are the fallback.
func (c *Client) parse(body []byte) ([]contracts.CalendarEvent, error) {
	if isWeeklyXML(body) {
		return c.parseWeeklyXML(body)
	}
	return c.parseCalendarHTML(body)
}
