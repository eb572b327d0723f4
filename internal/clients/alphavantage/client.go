// Package alphavantage provides a quote client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/interfaces"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

const (
	DefaultBaseURL   = "https://www.alphavantage.co"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the QuoteClient interface against Alpha Vantage's
// GLOBAL_QUOTE endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// globalQuoteResponse is the GLOBAL_QUOTE payload. Alpha Vantage returns all
// numeric fields as strings, and signals throttling with a "Note" or
// "Information" message in an otherwise-200 response.
type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// FetchPrice retrieves the current price for a symbol. All failures are
// returned as *interfaces.QuoteError with the kind decided here, at the
// adapter boundary.
func (c *Client) FetchPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = models.NormalizeSymbol(symbol)

	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, &interfaces.QuoteError{Kind: interfaces.QuoteErrTransient, Symbol: symbol, Err: err}
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, &interfaces.QuoteError{Kind: interfaces.QuoteErrTransient, Symbol: symbol, Err: err}
	}

	c.logger.Debug().Str("symbol", symbol).Msg("Alpha Vantage quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &interfaces.QuoteError{Kind: interfaces.QuoteErrTransient, Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, &interfaces.QuoteError{
			Kind:   interfaces.QuoteErrThrottled,
			Symbol: symbol,
			Err:    fmt.Errorf("status %d", resp.StatusCode),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, &interfaces.QuoteError{
			Kind:   interfaces.QuoteErrTransient,
			Symbol: symbol,
			Err:    fmt.Errorf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, &interfaces.QuoteError{Kind: interfaces.QuoteErrTransient, Symbol: symbol, Err: err}
	}

	// Throttling arrives as a 200 with a "Note"/"Information" body
	if msg := result.Note + result.Information; msg != "" && isThrottleMessage(msg) {
		return 0, &interfaces.QuoteError{
			Kind:   interfaces.QuoteErrThrottled,
			Symbol: symbol,
			Err:    fmt.Errorf("provider message: %s", truncate(msg, 120)),
		}
	}

	if result.ErrorMessage != "" || result.GlobalQuote.Price == "" {
		return 0, &interfaces.QuoteError{Kind: interfaces.QuoteErrNotFound, Symbol: symbol}
	}

	price, err := strconv.ParseFloat(result.GlobalQuote.Price, 64)
	if err != nil || price <= 0 {
		return 0, &interfaces.QuoteError{
			Kind:   interfaces.QuoteErrTransient,
			Symbol: symbol,
			Err:    fmt.Errorf("unparseable price %q", result.GlobalQuote.Price),
		}
	}

	return price, nil
}

func isThrottleMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "call frequency") ||
		strings.Contains(m, "rate limit") ||
		strings.Contains(m, "too many requests") ||
		strings.Contains(m, "higher api call volume")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
