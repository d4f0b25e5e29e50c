package polygon

import (
	"context"
	"fmt"
	"time"

	"PortRisk/internal/domain/models"
	"PortRisk/internal/domain/repository"
	pkghttp "PortRisk/pkg/http"
	"PortRisk/pkg/util"
)

// DefaultBaseURL is the public Polygon REST endpoint.
const DefaultBaseURL = "https://api.polygon.io"

// Client fetches daily aggregate bars from the Polygon REST API.
type Client struct {
	http    *pkghttp.Client
	baseURL string
	apiKey  string
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http = pkghttp.NewClient(pkghttp.WithTimeout(timeout))
	}
}

// NewClient creates a Polygon client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    pkghttp.NewClient(),
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type aggsResponse struct {
	Ticker       string `json:"ticker"`
	ResultsCount int    `json:"resultsCount"`
	Results      []struct {
		Timestamp int64   `json:"t"`
		Close     float64 `json:"c"`
	} `json:"results"`
	Status string `json:"status"`
}

// DailyBar fetches the aggregate bar for one ticker on one day. It returns
// repository.ErrNoResults when the market was closed on that day.
func (c *Client) DailyBar(ctx context.Context, ticker string, day time.Time) (*models.DailyClose, error) {
	date := day.UTC().Format(util.DateLayout)
	url := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s", c.baseURL, ticker, date, date)

	var parsed aggsResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    url,
		QueryParams: map[string][]string{
			"adjusted": {"true"},
			"sort":     {"asc"},
			"limit":    {"1"},
			"apiKey":   {c.apiKey},
		},
	}, &parsed)
	if err != nil {
		return nil, fmt.Errorf("polygon aggs %s: %w", ticker, err)
	}

	if len(parsed.Results) == 0 {
		return nil, repository.ErrNoResults
	}

	bar := parsed.Results[0]
	return &models.DailyClose{
		Ticker: ticker,
		Date:   util.DateFromEpochMillis(bar.Timestamp),
		Close:  bar.Close,
	}, nil
}

var _ repository.MarketDataClient = (*Client)(nil)
