// Package images fetches an illustrative photo for a word from Unsplash.
package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Unsplash API root.
const DefaultBaseURL = "https://api.unsplash.com"

var (
	// ErrNotConfigured is returned when no access key is set.
	ErrNotConfigured = errors.New("images: unsplash access key not configured")
	// ErrNoResults is returned when the search yields no photo.
	ErrNoResults = errors.New("images: no images found")
	// ErrUpstream wraps failed or malformed Unsplash responses.
	ErrUpstream = errors.New("images: upstream error")
)

// Image is the first search hit with its attribution.
type Image struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Thumb       string `json:"thumb"`
	Alt         string `json:"alt"`
	Author      string `json:"author"`
	AuthorURL   string `json:"authorUrl"`
	DownloadURL string `json:"downloadUrl"`
}

type searchResponse struct {
	Results []struct {
		ID             string `json:"id"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
		Links struct {
			Download string `json:"download"`
		} `json:"links"`
	} `json:"results"`
}

// Client searches Unsplash photos.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, accessKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accessKey:  accessKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "unsplash"),
	}
}

// Configured reports whether an access key is set.
func (c *Client) Configured() bool { return c.accessKey != "" }

// Find returns the first photo matching word.
func (c *Client) Find(ctx context.Context, word string) (*Image, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("query", word)
	q.Set("per_page", "1")
	q.Set("lang", "es")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("images: build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WarnContext(ctx, "unsplash request failed", slog.String("word", word), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if len(body.Results) == 0 {
		return nil, ErrNoResults
	}

	p := body.Results[0]
	alt := p.AltDescription
	if alt == "" {
		alt = "Image of " + word
	}
	return &Image{
		ID:          p.ID,
		URL:         p.URLs.Regular,
		Thumb:       p.URLs.Thumb,
		Alt:         alt,
		Author:      p.User.Name,
		AuthorURL:   p.User.Links.HTML,
		DownloadURL: p.Links.Download,
	}, nil
}
