package amplitude

import (
	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/runtimeconfig"
)

var (
	ErrContentDirRequired        = runtimeconfig.ErrContentDirRequired
	ErrOutputDirRequired         = runtimeconfig.ErrOutputDirRequired
	ErrOutputInsideContent       = runtimeconfig.ErrOutputInsideContent
	ErrMarkdownExtensionUnknown  = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrWatchDebounceInvalid      = runtimeconfig.ErrWatchDebounceInvalid
	ErrWatchIgnorePatternInvalid = runtimeconfig.ErrWatchIgnorePatternInvalid
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
)

var (
	ErrSchemaViolation         = compileerrors.ErrSchemaViolation
	ErrFrontmatterFormat       = compileerrors.ErrFrontmatterFormat
	ErrConfigDeserialization   = compileerrors.ErrConfigDeserialization
	ErrInvalidAnnotationSyntax = compileerrors.ErrInvalidAnnotationSyntax
	ErrUnknownAnnotationTag    = compileerrors.ErrUnknownAnnotationTag
	ErrAnnotationBlockMismatch = compileerrors.ErrAnnotationBlockMismatch
	ErrUnsupportedLanguage     = compileerrors.ErrUnsupportedLanguage
	ErrInvalidSignature        = compileerrors.ErrInvalidSignature
	ErrIDValidation            = compileerrors.ErrIDValidation
	ErrIO                      = compileerrors.ErrIO
	ErrNotFound                = compileerrors.ErrNotFound
)

type (
	Config         = runtimeconfig.Config
	MarkdownConfig = runtimeconfig.MarkdownConfig
	WatchConfig    = runtimeconfig.WatchConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
