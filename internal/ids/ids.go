// Package ids validates and composes the path-derived identifiers used as
// content index keys and rendered file names.
package ids

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
)

// KeySeparator joins hierarchical segments into the flat index key.
const KeySeparator = "-"

// ID is a hierarchical content identifier. Every segment matches
// [A-Za-z0-9_-]+, which keeps ids safe to use as file names.
type ID struct {
	segments []string
}

// Root returns the empty id the resolver starts from.
func Root() ID {
	return ID{}
}

// Child appends a validated segment.
func (id ID) Child(segment string) (ID, error) {
	if err := ValidateSegment(segment); err != nil {
		return ID{}, err
	}
	segments := make([]string, len(id.segments), len(id.segments)+1)
	copy(segments, id.segments)
	return ID{segments: append(segments, segment)}, nil
}

// Parent drops the trailing segment. The parent of a top-level id is Root.
func (id ID) Parent() ID {
	if len(id.segments) == 0 {
		return id
	}
	return ID{segments: id.segments[:len(id.segments)-1]}
}

// IsRoot reports whether the id has no segments.
func (id ID) IsRoot() bool {
	return len(id.segments) == 0
}

// Leaf returns the trailing segment, used to name exercise starter files.
func (id ID) Leaf() string {
	if len(id.segments) == 0 {
		return ""
	}
	return id.segments[len(id.segments)-1]
}

// String renders the hierarchical form, e.g. "rust/ownership".
func (id ID) String() string {
	return strings.Join(id.segments, "/")
}

// Key renders the flat index key, e.g. "rust-ownership".
func (id ID) Key() string {
	return strings.Join(id.segments, KeySeparator)
}

// ValidateSegment rejects empty segments and any byte outside [A-Za-z0-9_-].
func ValidateSegment(segment string) error {
	if segment == "" {
		return compileerrors.IDValidation(segment, "empty id segment")
	}
	return ValidateKey(segment)
}

// ValidateKey checks an untrusted flat key byte by byte. It never touches the
// filesystem so callers can run it before any lookup.
func ValidateKey(key string) error {
	if key == "" {
		return compileerrors.IDValidation(key, "id is empty")
	}
	for i := 0; i < len(key); i++ {
		if !isIDByte(key[i]) {
			return compileerrors.IDValidation(key, "invalid character in id: "+quoteByte(key[i]))
		}
	}
	return nil
}

func isIDByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	default:
		return false
	}
}

func quoteByte(c byte) string {
	if c < 0x20 || c >= 0x7f {
		return fmt.Sprintf("0x%02x", c)
	}
	return fmt.Sprintf("%q", rune(c))
}
