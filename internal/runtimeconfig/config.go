package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-amplitude/internal/markdown"
	"github.com/goliatone/go-amplitude/internal/watch"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

var ErrContentDirRequired = errors.New("amplitude config: content directory is required")
var ErrOutputDirRequired = errors.New("amplitude config: output directory is required")

// ErrOutputInsideContent prevents rendered generations from feeding back into
// the watched content tree.
var ErrOutputInsideContent = errors.New("amplitude config: output directory must not live inside the content directory")
var ErrMarkdownExtensionUnknown = errors.New("amplitude config: markdown extension is not supported")
var ErrWatchDebounceInvalid = errors.New("amplitude config: watch debounce must be zero or positive")
var ErrWatchIgnorePatternInvalid = errors.New("amplitude config: watch ignore pattern is invalid")
var ErrLoggingProviderRequired = errors.New("amplitude config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("amplitude config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("amplitude config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("amplitude config: logging format is invalid")

// Config aggregates the settings of one compiler instance.
type Config struct {
	ContentDir       string         `mapstructure:"content_dir"`
	OutputDir        string         `mapstructure:"output_dir"`
	SkipInvalidItems bool           `mapstructure:"skip_invalid_items"`
	Markdown         MarkdownConfig `mapstructure:"markdown"`
	Watch            WatchConfig    `mapstructure:"watch"`
	Logging          LoggingConfig  `mapstructure:"logging"`
}

// MarkdownConfig mirrors interfaces.RenderOptions.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	Unsafe     bool     `mapstructure:"unsafe"`
}

// RenderOptions converts the markdown settings into engine options.
func (m MarkdownConfig) RenderOptions() interfaces.RenderOptions {
	return interfaces.RenderOptions{
		Extensions: append([]string(nil), m.Extensions...),
		HardWraps:  m.HardWraps,
		Unsafe:     m.Unsafe,
	}
}

// WatchConfig tunes the recompilation driver.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Ignore   []string      `mapstructure:"ignore"`
}

// LoggingConfig selects the logger provider. Provider "noop" silences output.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns the settings used by the CLI when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		ContentDir: "content",
		OutputDir:  "rendered",
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "footnote"},
		},
		Watch: WatchConfig{
			Debounce: watch.DefaultDebounce,
			Ignore:   append([]string(nil), watch.DefaultIgnore...),
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	content := strings.TrimSpace(cfg.ContentDir)
	if content == "" {
		return ErrContentDirRequired
	}
	output := strings.TrimSpace(cfg.OutputDir)
	if output == "" {
		return ErrOutputDirRequired
	}
	if within(output, content) {
		return fmt.Errorf("%w: %s", ErrOutputInsideContent, output)
	}

	for _, name := range cfg.Markdown.Extensions {
		if !markdown.KnownExtension(name) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}

	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("%w: %s", ErrWatchDebounceInvalid, cfg.Watch.Debounce)
	}
	for _, pattern := range cfg.Watch.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %s", ErrWatchIgnorePatternInvalid, pattern)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// NormalizedProvider returns the lower-cased provider name.
func (l LoggingConfig) NormalizedProvider() string {
	return normalizeProvider(l.Provider)
}

func within(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
