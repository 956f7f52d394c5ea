package yahoo

import (
	"github.com/wonny/macrosig/pkg/httputil"
	"github.com/wonny/macrosig/pkg/logger"
)

// Client handles communication with the Yahoo Finance chart API
// ⭐ SSOT: Yahoo Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
// Yahoo blocks the default Go user agent, so the underlying client is
// configured with browser-like headers.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}

	httpClient.WithHeaders(map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		"Accept":     "application/json, text/plain, */*",
	})

	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}
