package internal

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/glosa/internal/analyzer"
	"github.com/starford/glosa/internal/dictionary"
	"github.com/starford/glosa/internal/images"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

var httpURL = regexp.MustCompile(`^https?://[^\s/]+`)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	SQLite     SQLiteConfig      `yaml:"sqlite"`
	Auth       AuthConfig        `yaml:"auth"`
	Dictionary DictionaryConfig  `yaml:"dictionary"`
	Analysis   AnalysisConfig    `yaml:"analysis"`
	Images     ImagesConfig      `yaml:"images"`
	Inbox      InboxConfig       `yaml:"inbox"`
	SSE        SSEConfig         `yaml:"sse"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		&c.App, &c.SQLite, &c.Auth, &c.Dictionary, &c.Analysis, &c.Images, &c.SSE,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// DictionaryConfig configures the RAE API client.
type DictionaryConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`

	// RateLimitRPS caps upstream requests per second; 0 disables the limiter.
	RateLimitRPS float64 `yaml:"rate_limit_rps"`
}

// Validate validates the dictionary configuration.
func (c *DictionaryConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.Match(httpURL).Error("must be an http(s) URL")),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.RateLimitRPS, validation.Min(0.0)),
	); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	return nil
}

// ClientOptions converts the section into dictionary client options.
func (c *DictionaryConfig) ClientOptions() dictionary.ClientOptions {
	return dictionary.ClientOptions{
		BaseURL:      c.BaseURL,
		Timeout:      c.Timeout,
		UserAgent:    c.UserAgent,
		RateLimitRPS: c.RateLimitRPS,
	}
}

// AnalysisConfig controls batch pacing against the dictionary.
type AnalysisConfig struct {
	GroupSize  int           `yaml:"group_size"`
	GroupDelay time.Duration `yaml:"group_delay"`
}

// Validate validates the analysis configuration.
func (c *AnalysisConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.GroupSize, validation.Required, validation.Min(1), validation.Max(50)),
		validation.Field(&c.GroupDelay, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

// Pacing returns the batch pacing for this section.
func (c *AnalysisConfig) Pacing() analyzer.Pacing {
	return analyzer.Pacing{GroupSize: c.GroupSize, Delay: c.GroupDelay}
}

// ImagesConfig configures the Unsplash passthrough. An empty AccessKey
// disables the images endpoint.
type ImagesConfig struct {
	BaseURL   string        `yaml:"base_url"`
	AccessKey string        `yaml:"access_key"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Validate validates the images configuration.
func (c *ImagesConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.Match(httpURL).Error("must be an http(s) URL")),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("images: %w", err)
	}
	return nil
}

// InboxConfig configures the directory importer. An empty Path disables it.
type InboxConfig struct {
	Path        string `yaml:"path"`
	AutoAnalyze bool   `yaml:"auto_analyze"`
}

// Enabled reports whether the importer should run.
func (c *InboxConfig) Enabled() bool {
	return c.Path != ""
}

// SSEConfig configures the event stream.
type SSEConfig struct {
	EventThrottle time.Duration `yaml:"event_throttle"`
}

// Validate validates the SSE configuration.
func (c *SSEConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.EventThrottle, validation.Min(time.Duration(0))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./glosa.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Dictionary: DictionaryConfig{
			BaseURL:   dictionary.DefaultBaseURL,
			Timeout:   10 * time.Second,
			UserAgent: "glosa/1.0",
		},
		Analysis: AnalysisConfig{
			GroupSize:  analyzer.DefaultGroupSize,
			GroupDelay: analyzer.DefaultGroupDelay,
		},
		Images: ImagesConfig{
			BaseURL: images.DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		SSE: SSEConfig{
			EventThrottle: 2 * time.Second,
		},
	}
}
