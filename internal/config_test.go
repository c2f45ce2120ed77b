package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/glosa/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Inbox.Enabled() {
		t.Error("inbox should be disabled by default")
	}
	p := cfg.Analysis.Pacing()
	if p.GroupSize != 5 || p.Delay != 100*time.Millisecond {
		t.Errorf("pacing = %+v, want 5/100ms", p)
	}
}

func TestAnalysisConfig_GroupSizeBounds(t *testing.T) {
	for _, size := range []int{0, -1, 51} {
		cfg := AnalysisConfig{GroupSize: size}
		if err := cfg.Validate(); err == nil {
			t.Errorf("group_size %d should fail", size)
		}
	}
	cfg := AnalysisConfig{GroupSize: 50, GroupDelay: 0}
	if err := cfg.Validate(); err != nil {
		t.Errorf("group_size 50 with no delay should pass: %v", err)
	}
}

func TestAnalysisConfig_NegativeDelay(t *testing.T) {
	cfg := AnalysisConfig{GroupSize: 5, GroupDelay: -time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative delay should fail")
	}
}

func TestDictionaryConfig_Validation(t *testing.T) {
	cfg := NewDefaultConfig().Dictionary
	cfg.BaseURL = "rae-api.com"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("base_url without scheme should fail")
	}
	if !strings.HasPrefix(err.Error(), "dictionary:") {
		t.Errorf("error should name the section: %v", err)
	}

	cfg = NewDefaultConfig().Dictionary
	cfg.RateLimitRPS = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative rate limit should fail")
	}

	cfg = NewDefaultConfig().Dictionary
	cfg.Timeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero timeout should fail")
	}
}

func TestDictionaryConfig_ClientOptions(t *testing.T) {
	cfg := DictionaryConfig{BaseURL: "http://localhost:9", Timeout: time.Second, UserAgent: "x", RateLimitRPS: 3}
	opts := cfg.ClientOptions()
	if opts.BaseURL != cfg.BaseURL || opts.Timeout != time.Second || opts.UserAgent != "x" || opts.RateLimitRPS != 3 {
		t.Errorf("opts = %+v", opts)
	}
}

func TestImagesConfig_EmptyKeyIsValid(t *testing.T) {
	cfg := NewDefaultConfig().Images
	cfg.AccessKey = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty access key should be allowed: %v", err)
	}
	cfg.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty base_url should fail")
	}
}

func TestConfig_LoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("GLOSA_TEST_TOKEN", "s3cret")
	yamlData := `app:
  log_level: debug
  http:
    port: 9090
auth:
  mode: token
  token: ${GLOSA_TEST_TOKEN}
analysis:
  group_size: 3
  group_delay: 250ms
inbox:
  path: ./inbox
  auto_analyze: true
`
	if err := os.WriteFile(path, []byte(yamlData), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := config.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.LogLevel != slog.LevelDebug || cfg.App.HTTP.Port != 9090 {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Auth.Token != "s3cret" || !cfg.Auth.AuthEnabled() {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Analysis.GroupSize != 3 || cfg.Analysis.GroupDelay != 250*time.Millisecond {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if !cfg.Inbox.Enabled() || !cfg.Inbox.AutoAnalyze {
		t.Errorf("inbox = %+v", cfg.Inbox)
	}
	// Untouched sections keep their defaults.
	if cfg.Dictionary.BaseURL != "https://rae-api.com/api" || cfg.SQLite.Path != "./glosa.db" {
		t.Errorf("defaults lost: %+v %+v", cfg.Dictionary, cfg.SQLite)
	}
}
