// Package stocks fetches market data from the Alpha Vantage API.
package stocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

const defaultBaseURL = "https://www.alphavantage.co"

// Client implements the QuoteProvider interface against Alpha Vantage.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// NewClient creates a quote client with the given API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: alpha vantage API key", common.ErrMissingConfig)
	}

	client := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default().With("component", "stocks"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Alpha Vantage wire formats. Field names carry numeric prefixes.
type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"` // e.g. "1.2345%"
	} `json:"Global Quote"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

type dailySeriesResponse struct {
	Series map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"5. volume"`
	} `json:"Time Series (Daily)"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

// CurrentQuote fetches the latest price snapshot for a symbol.
func (c *Client) CurrentQuote(ctx context.Context, symbol string) (*service.Quote, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	var wire globalQuoteResponse
	if err := c.get(ctx, "GLOBAL_QUOTE", symbol, nil, &wire); err != nil {
		return nil, err
	}
	if err := apiError(wire.Note, wire.ErrorMessage); err != nil {
		return nil, err
	}
	if wire.GlobalQuote.Symbol == "" {
		return nil, fmt.Errorf("%w: no quote returned for %s", common.ErrUpstream, symbol)
	}

	price, err := strconv.ParseFloat(wire.GlobalQuote.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed price %q: %v", common.ErrUpstream, wire.GlobalQuote.Price, err)
	}
	change, err := strconv.ParseFloat(wire.GlobalQuote.Change, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed change %q: %v", common.ErrUpstream, wire.GlobalQuote.Change, err)
	}
	changePercent, err := strconv.ParseFloat(strings.TrimSuffix(wire.GlobalQuote.ChangePercent, "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed change percent %q: %v", common.ErrUpstream, wire.GlobalQuote.ChangePercent, err)
	}

	return &service.Quote{
		Symbol:           wire.GlobalQuote.Symbol,
		Price:            price,
		DayChange:        change,
		DayChangePercent: changePercent,
	}, nil
}

// DailyHistory fetches up to days of daily prices for a symbol, oldest
// first.
func (c *Client) DailyHistory(ctx context.Context, symbol string, days int) ([]model.StockPrice, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive")
	}

	var wire dailySeriesResponse
	if err := c.get(ctx, "TIME_SERIES_DAILY", symbol, map[string]string{"outputsize": "compact"}, &wire); err != nil {
		return nil, err
	}
	if err := apiError(wire.Note, wire.ErrorMessage); err != nil {
		return nil, err
	}
	if len(wire.Series) == 0 {
		return nil, fmt.Errorf("%w: no price history returned for %s", common.ErrUpstream, symbol)
	}

	dates := make([]string, 0, len(wire.Series))
	for date := range wire.Series {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > days {
		dates = dates[:days]
	}

	prices := make([]model.StockPrice, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		date := dates[i]
		day := wire.Series[date]

		price := model.StockPrice{Symbol: symbol, Date: date}
		var err error
		if price.Open, err = strconv.ParseFloat(day.Open, 64); err != nil {
			return nil, fmt.Errorf("%w: malformed open for %s: %v", common.ErrUpstream, date, err)
		}
		if price.High, err = strconv.ParseFloat(day.High, 64); err != nil {
			return nil, fmt.Errorf("%w: malformed high for %s: %v", common.ErrUpstream, date, err)
		}
		if price.Low, err = strconv.ParseFloat(day.Low, 64); err != nil {
			return nil, fmt.Errorf("%w: malformed low for %s: %v", common.ErrUpstream, date, err)
		}
		if price.Close, err = strconv.ParseFloat(day.Close, 64); err != nil {
			return nil, fmt.Errorf("%w: malformed close for %s: %v", common.ErrUpstream, date, err)
		}
		if price.Volume, err = strconv.ParseInt(day.Volume, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: malformed volume for %s: %v", common.ErrUpstream, date, err)
		}
		prices = append(prices, price)
	}

	return prices, nil
}

func (c *Client) get(ctx context.Context, function, symbol string, extra map[string]string, out any) error {
	u, err := url.Parse(c.baseURL + "/query")
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)
	for key, value := range extra {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("Requesting market data", "function", function, "symbol", symbol)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: alpha vantage returned %d - %s", common.ErrUpstream, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", common.ErrUpstream, err)
	}
	return nil
}

// apiError maps Alpha Vantage's in-band error fields. A "Note" means the
// free-tier rate limit was hit.
func apiError(note, errorMessage string) error {
	if note != "" {
		return fmt.Errorf("%w: %s", common.ErrRateLimit, note)
	}
	if errorMessage != "" {
		return fmt.Errorf("%w: %s", common.ErrUpstream, errorMessage)
	}
	return nil
}

// Ensure Client implements QuoteProvider.
var _ service.QuoteProvider = (*Client)(nil)
