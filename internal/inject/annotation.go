package inject

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
)

// Annotation is a parsed `@name;data` marker.
type Annotation struct {
	Name string
	Data string
}

// ParseAnnotation splits raw at the first `;`. raw must start with `@`.
func ParseAnnotation(raw string) (Annotation, error) {
	body := strings.TrimSpace(strings.TrimPrefix(raw, "@"))
	if strings.ContainsFunc(body, unicode.IsSpace) {
		return Annotation{}, compileerrors.InvalidAnnotationSyntax(raw, "`@` tags cannot contain whitespace")
	}
	name, data, _ := strings.Cut(body, ";")
	if name == "" {
		return Annotation{}, compileerrors.InvalidAnnotationSyntax(raw, "`@` tags need a name")
	}
	return Annotation{Name: name, Data: data}, nil
}
