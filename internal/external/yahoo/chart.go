package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/internal/signalconfig"
)

// chartResponse mirrors the v8 chart API envelope
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol string `json:"symbol"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// FetchDailyCloses fetches daily closing prices for one ticker over a
// trailing lookback window
// ⭐ SSOT: Yahoo 차트 API 호출은 이 함수에서만
func (c *Client) FetchDailyCloses(ctx context.Context, ticker string, lookbackDays int) ([]contracts.Candle, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%dd&interval=1d",
		c.baseURL, url.PathEscape(ticker), lookbackDays)

	body, err := c.httpClient.GetBody(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("fetch chart for %s: %w", ticker, err)
	}

	candles, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("parse chart for %s: %w", ticker, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(candles),
	}).Debug("Fetched daily closes")

	return candles, nil
}

// FetchBasket fetches the full instrument basket sequentially.
// Any single failure fails the whole basket: the caller substitutes the
// neutral snapshot rather than mixing fresh and stale values.
func (c *Client) FetchBasket(ctx context.Context, rules *signalconfig.Config, lookbackDays int) (map[string]*contracts.PriceSeries, error) {
	basket := make(map[string]*contracts.PriceSeries, len(rules.Instruments))

	for _, inst := range rules.Instruments {
		candles, err := c.FetchDailyCloses(ctx, inst.Ticker, lookbackDays)
		if err != nil {
			return nil, fmt.Errorf("basket fetch failed at %s: %w", inst.Key, err)
		}

		basket[inst.Key] = &contracts.PriceSeries{
			Instrument: inst.Key,
			Ticker:     inst.Ticker,
			Candles:    candles,
		}
	}

	return basket, nil
}

// parseChart extracts (date, close) pairs from a chart API payload.
// Null closes (holidays, partial sessions) are skipped per-point.
func parseChart(body []byte) ([]contracts.Candle, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("provider error %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty result")
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data")
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("timestamp/close length mismatch: %d vs %d", len(result.Timestamp), len(closes))
	}

	var candles []contracts.Candle
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		candles = append(candles, contracts.Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}

	return candles, nil
}
