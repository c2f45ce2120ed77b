// Package dictionary resolves Spanish words against the RAE dictionary API,
// caching what it finds.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/starford/glosa/internal/models"
)

// DefaultBaseURL is the public RAE API root.
const DefaultBaseURL = "https://rae-api.com/api"

const maxBodyBytes = 4 << 20

// ClientOptions configures a Client. Zero values select defaults.
type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client

	// RateLimitRPS caps requests per second across all callers. <=0 disables it.
	RateLimitRPS float64
}

// Client talks to the dictionary authority.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient creates a Client.
func NewClient(opts ClientOptions, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "glosa/1.0"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}
	return &Client{
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
		limiter:    limiter,
		log:        logger.With("adapter", "rae"),
	}
}

// Lookup fetches the entry for an exact word.
// A word the authority does not know yields a *NotFoundError.
func (c *Client) Lookup(ctx context.Context, word string) (*models.Entry, error) {
	return c.get(ctx, "lookup", word, c.baseURL+"/words/"+url.PathEscape(word))
}

// Search runs the authority's exact-match search for word.
func (c *Client) Search(ctx context.Context, word string) (*models.Entry, error) {
	q := url.Values{}
	q.Set("q", word)
	q.Set("exact", "true")
	return c.get(ctx, "search", word, c.baseURL+"/search?"+q.Encode())
}

func (c *Client) get(ctx context.Context, op, word, reqURL string) (*models.Entry, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &UpstreamError{Op: op, Word: word, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &UpstreamError{Op: op, Word: word, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.log.DebugContext(ctx, "rae request", slog.String("op", op), slog.String("word", word))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: op, Word: word, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UpstreamError{Op: op, Word: word, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode == http.StatusNotFound {
		// The body is optional on 404; keep any suggestions it carries.
		var env apiResponse
		_ = json.Unmarshal(body, &env)
		return nil, &NotFoundError{Word: word, Suggestions: env.Suggestions}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Op: op, Word: word, Status: resp.StatusCode}
	}

	var env apiResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &UpstreamError{Op: op, Word: word, Status: resp.StatusCode, Err: fmt.Errorf("decode json: %w", err)}
	}

	if !env.OK {
		code := env.errorCode()
		if code == codeNotFound {
			return nil, &NotFoundError{Word: word, Suggestions: env.Suggestions}
		}
		return nil, &UpstreamError{Op: op, Word: word, Status: resp.StatusCode, Err: fmt.Errorf("authority error %q", code)}
	}
	if !env.hasEntry() {
		return nil, &UpstreamError{Op: op, Word: word, Status: resp.StatusCode, Err: errors.New("response missing data.word")}
	}

	c.log.DebugContext(ctx, "rae response",
		slog.String("op", op),
		slog.String("word", word),
		slog.Int("meanings", len(env.Data.Meanings)),
	)
	return env.Data, nil
}
