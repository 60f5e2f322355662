package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-amplitude/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Watch.Debounce != 50*time.Millisecond {
		t.Fatalf("expected 50ms debounce, got %v", cfg.Watch.Debounce)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"missing content dir", func(c *runtimeconfig.Config) { c.ContentDir = " " }, runtimeconfig.ErrContentDirRequired},
		{"missing output dir", func(c *runtimeconfig.Config) { c.OutputDir = "" }, runtimeconfig.ErrOutputDirRequired},
		{"output inside content", func(c *runtimeconfig.Config) { c.OutputDir = "content/rendered" }, runtimeconfig.ErrOutputInsideContent},
		{"output equals content", func(c *runtimeconfig.Config) { c.OutputDir = "./content" }, runtimeconfig.ErrOutputInsideContent},
		{"unknown extension", func(c *runtimeconfig.Config) { c.Markdown.Extensions = []string{"mermaid"} }, runtimeconfig.ErrMarkdownExtensionUnknown},
		{"negative debounce", func(c *runtimeconfig.Config) { c.Watch.Debounce = -time.Second }, runtimeconfig.ErrWatchDebounceInvalid},
		{"bad ignore glob", func(c *runtimeconfig.Config) { c.Watch.Ignore = []string{"[oops"} }, runtimeconfig.ErrWatchIgnorePatternInvalid},
		{"missing provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "" }, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"bad level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"bad format", func(c *runtimeconfig.Config) { c.Logging.Format = "xml" }, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_AllowsSiblingOutputDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.ContentDir = "courses"
	cfg.OutputDir = "courses-rendered"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_NoopProviderIgnoresFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = " NOOP "
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Logging.NormalizedProvider() != "noop" {
		t.Fatalf("expected normalized provider noop, got %q", cfg.Logging.NormalizedProvider())
	}
}

func TestMarkdownRenderOptionsCopiesExtensions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.HardWraps = true

	opts := cfg.Markdown.RenderOptions()
	opts.Extensions[0] = "changed"

	if cfg.Markdown.Extensions[0] != "gfm" {
		t.Fatalf("expected extensions to be copied, got %v", cfg.Markdown.Extensions)
	}
	if !opts.HardWraps {
		t.Fatalf("expected hard wraps to carry over")
	}
}
