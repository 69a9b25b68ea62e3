// Package alphavantage provides a client for the Alpha Vantage fundamentals API.
// The free tier allows 25 requests per UTC day, so responses are cached
// in memory and every outgoing request is counted against a daily budget.
package alphavantage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL    = "https://www.alphavantage.co/query"
	defaultDailyLimit = 25
)

// ClientInterface is the Alpha Vantage surface the service depends on
type ClientInterface interface {
	GetCompanyOverview(ctx context.Context, symbol string) (*CompanyOverview, error)
	GetIncomeStatement(ctx context.Context, symbol string) (*IncomeStatement, error)
	GetBalanceSheet(ctx context.Context, symbol string) (*BalanceSheet, error)
	GetGlobalQuote(ctx context.Context, symbol string) (*GlobalQuote, error)
	SearchSymbol(ctx context.Context, keywords string) ([]SymbolMatch, error)
	GetRemainingRequests() int
	ResetDailyCounter()
	PurgeExpired() int
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// Client is the Alpha Vantage API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger

	mu           sync.Mutex
	dailyLimit   int
	requestCount int
	resetAt      time.Time
	cache        map[string]cacheEntry
	cacheTTL     CacheTTL
}

// NewClient creates a new Alpha Vantage client with the free-tier daily limit
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:        log.With().Str("client", "alphavantage").Logger(),
		dailyLimit: defaultDailyLimit,
		resetAt:    nextMidnightUTC(),
		cache:      make(map[string]cacheEntry),
		cacheTTL:   DefaultCacheTTL(),
	}
}

// SetDailyLimit changes the daily request budget
func (c *Client) SetDailyLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit > 0 {
		c.dailyLimit = limit
	}
}

// SetHTTPTimeout changes the per-request HTTP timeout
func (c *Client) SetHTTPTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
}

// SetCacheTTL replaces the cache lifetimes
func (c *Client) SetCacheTTL(ttl CacheTTL) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cacheTTL = ttl
}

// GetRemainingRequests returns how many requests are left today
func (c *Client) GetRemainingRequests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rolloverLocked(time.Now().UTC())
	remaining := c.dailyLimit - c.requestCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResetDailyCounter restores the full daily budget
func (c *Client) ResetDailyCounter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestCount = 0
	c.resetAt = nextMidnightUTC()
	c.log.Info().Int("limit", c.dailyLimit).Msg("Daily request counter reset")
}

// ClearCache drops every cached response
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

// PurgeExpired drops expired cache entries and returns how many were removed
func (c *Client) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.cache {
		if now.After(entry.expiresAt) {
			delete(c.cache, key)
			removed++
		}
	}
	return removed
}

// GetCompanyOverview fetches company profile and ratios
func (c *Client) GetCompanyOverview(ctx context.Context, symbol string) (*CompanyOverview, error) {
	symbol = normalizeSymbol(symbol)
	params := map[string]string{"symbol": symbol}
	key := buildCacheKey("OVERVIEW", params)

	if cached, ok := c.getFromCache(key); ok {
		if overview, ok := cached.(*CompanyOverview); ok {
			return overview, nil
		}
	}

	body, err := c.doRequest(ctx, "OVERVIEW", params)
	if err != nil {
		return nil, err
	}

	// Unknown symbols come back as an empty object
	if isEmptyObject(body) {
		return nil, ErrSymbolNotFound{Symbol: symbol}
	}

	overview, err := parseCompanyOverview(body)
	if err != nil {
		return nil, err
	}
	if overview.Symbol == "" {
		return nil, ErrSymbolNotFound{Symbol: symbol}
	}

	c.setCache(key, overview, c.ttl().Fundamentals)
	return overview, nil
}

// GetIncomeStatement fetches annual and quarterly income statements
func (c *Client) GetIncomeStatement(ctx context.Context, symbol string) (*IncomeStatement, error) {
	symbol = normalizeSymbol(symbol)
	params := map[string]string{"symbol": symbol}
	key := buildCacheKey("INCOME_STATEMENT", params)

	if cached, ok := c.getFromCache(key); ok {
		if stmt, ok := cached.(*IncomeStatement); ok {
			return stmt, nil
		}
	}

	body, err := c.doRequest(ctx, "INCOME_STATEMENT", params)
	if err != nil {
		return nil, err
	}
	if isEmptyObject(body) {
		return nil, ErrSymbolNotFound{Symbol: symbol}
	}

	stmt, err := parseIncomeStatement(body)
	if err != nil {
		return nil, err
	}

	c.setCache(key, stmt, c.ttl().Fundamentals)
	return stmt, nil
}

// GetBalanceSheet fetches annual balance sheets
func (c *Client) GetBalanceSheet(ctx context.Context, symbol string) (*BalanceSheet, error) {
	symbol = normalizeSymbol(symbol)
	params := map[string]string{"symbol": symbol}
	key := buildCacheKey("BALANCE_SHEET", params)

	if cached, ok := c.getFromCache(key); ok {
		if sheet, ok := cached.(*BalanceSheet); ok {
			return sheet, nil
		}
	}

	body, err := c.doRequest(ctx, "BALANCE_SHEET", params)
	if err != nil {
		return nil, err
	}
	if isEmptyObject(body) {
		return nil, ErrSymbolNotFound{Symbol: symbol}
	}

	sheet, err := parseBalanceSheet(body)
	if err != nil {
		return nil, err
	}

	c.setCache(key, sheet, c.ttl().Fundamentals)
	return sheet, nil
}

// GetGlobalQuote fetches the latest price
func (c *Client) GetGlobalQuote(ctx context.Context, symbol string) (*GlobalQuote, error) {
	symbol = normalizeSymbol(symbol)
	params := map[string]string{"symbol": symbol}
	key := buildCacheKey("GLOBAL_QUOTE", params)

	if cached, ok := c.getFromCache(key); ok {
		if quote, ok := cached.(*GlobalQuote); ok {
			return quote, nil
		}
	}

	body, err := c.doRequest(ctx, "GLOBAL_QUOTE", params)
	if err != nil {
		return nil, err
	}

	quote, err := parseGlobalQuote(body)
	if err != nil {
		return nil, ErrSymbolNotFound{Symbol: symbol}
	}

	c.setCache(key, quote, c.ttl().PriceData)
	return quote, nil
}

// SearchSymbol finds tickers matching free-text keywords
func (c *Client) SearchSymbol(ctx context.Context, keywords string) ([]SymbolMatch, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, fmt.Errorf("keywords cannot be empty")
	}

	params := map[string]string{"keywords": keywords}
	key := buildCacheKey("SYMBOL_SEARCH", params)

	if cached, ok := c.getFromCache(key); ok {
		if matches, ok := cached.([]SymbolMatch); ok {
			return matches, nil
		}
	}

	body, err := c.doRequest(ctx, "SYMBOL_SEARCH", params)
	if err != nil {
		return nil, err
	}

	matches, err := parseSymbolSearch(body)
	if err != nil {
		return nil, err
	}

	c.setCache(key, matches, c.ttl().Search)
	return matches, nil
}

// doRequest spends one unit of the daily budget and performs the query
func (c *Client) doRequest(ctx context.Context, function string, params map[string]string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrInvalidAPIKey{}
	}
	if err := c.checkRateLimit(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("function", function)
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.log.Debug().
		Str("function", function).
		Interface("params", params).
		Int("remaining", c.GetRemainingRequests()).
		Msg("Making Alpha Vantage request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpha vantage API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := c.checkAPIError(body); err != nil {
		return nil, err
	}

	return body, nil
}

// checkRateLimit counts one request against the daily budget
func (c *Client) checkRateLimit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rolloverLocked(time.Now().UTC())
	if c.requestCount >= c.dailyLimit {
		c.log.Warn().
			Int("limit", c.dailyLimit).
			Time("reset_at", c.resetAt).
			Msg("Alpha Vantage daily limit reached")
		return ErrRateLimitExceeded{ResetAt: c.resetAt}
	}

	c.requestCount++
	return nil
}

// rolloverLocked resets the counter once the UTC day has passed
func (c *Client) rolloverLocked(now time.Time) {
	if !now.Before(c.resetAt) {
		c.requestCount = 0
		c.resetAt = nextMidnightUTC()
	}
}

// checkAPIError detects error payloads Alpha Vantage returns with status 200
func (c *Client) checkAPIError(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("Thank you")) {
		return ErrRateLimitExceeded{}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		// Not an object, let the caller's parser decide
		return nil
	}

	if note, ok := payload["Note"].(string); ok && note != "" {
		return ErrRateLimitExceeded{}
	}
	if info, ok := payload["Information"].(string); ok && info != "" {
		lower := strings.ToLower(info)
		if strings.Contains(lower, "apikey") || strings.Contains(lower, "api key") {
			return ErrInvalidAPIKey{}
		}
		return ErrRateLimitExceeded{}
	}
	if msg, ok := payload["Error Message"].(string); ok && msg != "" {
		if strings.Contains(strings.ToLower(msg), "apikey") {
			return ErrInvalidAPIKey{}
		}
		return ErrAPI{Message: msg}
	}

	return nil
}

func (c *Client) ttl() CacheTTL {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cacheTTL
}

func (c *Client) getFromCache(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.cache, key)
		return nil, false
	}
	c.log.Debug().Str("key", key).Msg("Alpha Vantage cache hit")
	return entry.data, true
}

func (c *Client) setCache(key string, data interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{data: data, expiresAt: time.Now().Add(ttl)}
}

// buildCacheKey builds a stable key from the function and its parameters.
// The API key never becomes part of the key.
func buildCacheKey(function string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "apikey" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(function)
	for _, k := range keys {
		sb.WriteString("|")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(params[k])
	}
	return sb.String()
}

func nextMidnightUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func isEmptyObject(body []byte) bool {
	return bytes.Equal(bytes.Join(bytes.Fields(body), nil), []byte("{}"))
}
