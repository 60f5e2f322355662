// Package runner describes the languages exercises can be written in, the
// type grammar used by exercise function signatures and the request handed to
// the external sandbox runner.
package runner

import (
	"sort"
	"strings"
)

// Language names a runner image.
type Language string

const (
	Rust       Language = "rust"
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Go         Language = "go"
	C          Language = "c"
	Cpp        Language = "cpp"
	Java       Language = "java"
)

var languageByExtension = map[string]Language{
	"rs":   Rust,
	"py":   Python,
	"js":   JavaScript,
	"ts":   TypeScript,
	"go":   Go,
	"c":    C,
	"cpp":  Cpp,
	"java": Java,
}

var extensionByLanguage = func() map[Language]string {
	out := make(map[Language]string, len(languageByExtension))
	for ext, lang := range languageByExtension {
		out[lang] = ext
	}
	return out
}()

// FromExtension maps a source file extension (without the dot) to a language.
func FromExtension(ext string) (Language, bool) {
	lang, ok := languageByExtension[strings.TrimPrefix(ext, ".")]
	return lang, ok
}

// ParseLanguage accepts either a language name or its file extension.
func ParseLanguage(value string) (Language, bool) {
	key := strings.ToLower(strings.TrimSpace(value))
	if _, ok := extensionByLanguage[Language(key)]; ok {
		return Language(key), true
	}
	return FromExtension(key)
}

// Extension returns the source file extension for the language.
func (l Language) Extension() string {
	return extensionByLanguage[l]
}

// Valid reports whether the language is known.
func (l Language) Valid() bool {
	_, ok := extensionByLanguage[l]
	return ok
}

func (l Language) String() string {
	return string(l)
}

// Languages lists every supported language in name order.
func Languages() []Language {
	out := make([]Language, 0, len(extensionByLanguage))
	for lang := range extensionByLanguage {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
