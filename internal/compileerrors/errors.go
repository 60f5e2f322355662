// Package compileerrors defines the error taxonomy shared by the compilation
// pipeline. Every constructor returns a go-errors value that still matches its
// sentinel through errors.Is.
package compileerrors

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrSchemaViolation marks missing or unexpected directory entries.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrFrontmatterFormat marks a missing or unterminated frontmatter header.
	ErrFrontmatterFormat = errors.New("frontmatter format error")
	// ErrConfigDeserialization marks malformed headers, quiz or exercise configs.
	ErrConfigDeserialization = errors.New("config deserialization error")
	// ErrInvalidAnnotationSyntax marks whitespace or empty names in `@` annotations.
	ErrInvalidAnnotationSyntax = errors.New("invalid annotation syntax")
	// ErrUnknownAnnotationTag marks annotations with no registered handler.
	ErrUnknownAnnotationTag = errors.New("unknown annotation tag")
	// ErrAnnotationBlockMismatch marks an annotation followed by the wrong block.
	ErrAnnotationBlockMismatch = errors.New("annotation block mismatch")
	// ErrUnsupportedLanguage marks source files with an unmapped extension.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrInvalidSignature marks malformed exercise function signatures.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrIDValidation marks ids containing characters outside [A-Za-z0-9_-].
	ErrIDValidation = errors.New("id validation error")
	// ErrIO marks filesystem and encoding failures.
	ErrIO = errors.New("io error")
	// ErrNotFound marks lookups of ids absent from the published index.
	ErrNotFound = errors.New("not found")
)

const (
	TextCodeSchemaViolation         = "SCHEMA_VIOLATION"
	TextCodeFrontmatterFormat       = "FRONTMATTER_FORMAT"
	TextCodeConfigDeserialization   = "CONFIG_DESERIALIZATION"
	TextCodeInvalidAnnotationSyntax = "INVALID_ANNOTATION_SYNTAX"
	TextCodeUnknownAnnotationTag    = "UNKNOWN_ANNOTATION_TAG"
	TextCodeAnnotationBlockMismatch = "ANNOTATION_BLOCK_MISMATCH"
	TextCodeUnsupportedLanguage     = "UNSUPPORTED_LANGUAGE"
	TextCodeInvalidSignature        = "INVALID_SIGNATURE"
	TextCodeIDValidation            = "ID_VALIDATION"
	TextCodeIO                      = "IO_ERROR"
	TextCodeNotFound                = "NOT_FOUND"
)

// SchemaViolation reports a missing or unexpected entry at path.
func SchemaViolation(path, message string) error {
	return goerrors.Wrap(ErrSchemaViolation, goerrors.CategoryValidation, fmt.Sprintf("%s: %s", path, message)).
		WithTextCode(TextCodeSchemaViolation).
		WithMetadata(map[string]any{"path": path})
}

// FrontmatterFormat reports a missing or unterminated header in file.
func FrontmatterFormat(file, message string) error {
	return goerrors.Wrap(ErrFrontmatterFormat, goerrors.CategoryBadInput, fmt.Sprintf("%s: %s", file, message)).
		WithTextCode(TextCodeFrontmatterFormat).
		WithMetadata(map[string]any{"file": file})
}

// ConfigDeserialization wraps a decode failure for the named source.
func ConfigDeserialization(source string, cause error) error {
	return goerrors.Wrap(join(ErrConfigDeserialization, cause), goerrors.CategoryBadInput, fmt.Sprintf("%s: %s", source, describe(cause))).
		WithTextCode(TextCodeConfigDeserialization).
		WithMetadata(map[string]any{"source": source})
}

// InvalidAnnotationSyntax reports a malformed `@name;data` annotation.
func InvalidAnnotationSyntax(annotation, message string) error {
	return goerrors.Wrap(ErrInvalidAnnotationSyntax, goerrors.CategoryValidation, fmt.Sprintf("%s: %s", message, annotation)).
		WithTextCode(TextCodeInvalidAnnotationSyntax).
		WithMetadata(map[string]any{"annotation": annotation})
}

// UnknownAnnotationTag reports an annotation name with no registered handler.
func UnknownAnnotationTag(name string) error {
	return goerrors.Wrap(ErrUnknownAnnotationTag, goerrors.CategoryValidation, "unknown `@` tag: "+name).
		WithTextCode(TextCodeUnknownAnnotationTag).
		WithMetadata(map[string]any{"tag": name})
}

// AnnotationBlockMismatch reports the block that followed an annotation.
func AnnotationBlockMismatch(name, expected, actual string) error {
	return goerrors.Wrap(ErrAnnotationBlockMismatch, goerrors.CategoryValidation,
		fmt.Sprintf("`@%s` expected %s, got %s", name, expected, actual)).
		WithTextCode(TextCodeAnnotationBlockMismatch).
		WithMetadata(map[string]any{"tag": name, "expected": expected, "actual": actual})
}

// UnsupportedLanguage reports a source file extension with no language mapping.
func UnsupportedLanguage(path, ext string) error {
	return goerrors.Wrap(ErrUnsupportedLanguage, goerrors.CategoryValidation, fmt.Sprintf("%s: unsupported language extension %q", path, ext)).
		WithTextCode(TextCodeUnsupportedLanguage).
		WithMetadata(map[string]any{"path": path, "extension": ext})
}

// InvalidSignature reports a malformed function signature declaration.
func InvalidSignature(function, message string) error {
	return goerrors.Wrap(ErrInvalidSignature, goerrors.CategoryValidation, fmt.Sprintf("function %s: %s", function, message)).
		WithTextCode(TextCodeInvalidSignature).
		WithMetadata(map[string]any{"function": function})
}

// IDValidation reports an id that must not be used as a lookup key.
func IDValidation(id, message string) error {
	return goerrors.Wrap(ErrIDValidation, goerrors.CategoryValidation, message).
		WithTextCode(TextCodeIDValidation).
		WithMetadata(map[string]any{"id": id})
}

// IO wraps a filesystem or encoding failure at path.
func IO(path string, cause error) error {
	return goerrors.Wrap(join(ErrIO, cause), goerrors.CategoryInternal, fmt.Sprintf("%s: %s", path, describe(cause))).
		WithTextCode(TextCodeIO).
		WithMetadata(map[string]any{"path": path})
}

// NotFound reports an id absent from the published index.
func NotFound(kind, id string) error {
	return goerrors.Wrap(ErrNotFound, goerrors.CategoryNotFound, fmt.Sprintf("%s %q not found", kind, id)).
		WithTextCode(TextCodeNotFound).
		WithMetadata(map[string]any{"kind": kind, "id": id})
}

func join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

func describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
