package markdown

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
)

// Delimiter opens and closes the frontmatter header.
const Delimiter = "---"

var errInvalidUTF8 = errors.New("invalid utf-8 in file")

// tomlFormat reads a `---` delimited header as strict TOML.
var tomlFormat = frontmatter.NewFormat(Delimiter, Delimiter, DecodeStrictTOML)

// SplitFrontMatter decodes the header of source into header and returns the
// Markdown body. name is only used to give errors context.
func SplitFrontMatter(name string, source []byte, header any) ([]byte, error) {
	if !opensWithDelimiter(source) {
		return nil, compileerrors.FrontmatterFormat(name, "did not find frontmatter header (headers start with `---`)")
	}

	body, err := frontmatter.MustParse(bytes.NewReader(source), header, tomlFormat)
	if err != nil {
		var decodeErr *headerDecodeError
		if errors.As(err, &decodeErr) {
			return nil, compileerrors.ConfigDeserialization(name+" frontmatter", decodeErr.cause)
		}
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, compileerrors.FrontmatterFormat(name, "did not find end of frontmatter header")
		}
		return nil, compileerrors.FrontmatterFormat(name, err.Error())
	}

	if !utf8.Valid(body) {
		return nil, compileerrors.IO(name, errInvalidUTF8)
	}
	return body, nil
}

// EncodeFrontMatter serialises header as TOML between delimiters followed by body.
func EncodeFrontMatter(header any, body []byte) ([]byte, error) {
	encoded, err := toml.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(encoded) + len(body) + 8)
	buf.WriteString(Delimiter + "\n")
	buf.Write(encoded)
	if len(encoded) > 0 && encoded[len(encoded)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(Delimiter + "\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// DecodeStrictTOML decodes data into v rejecting keys v does not declare.
func DecodeStrictTOML(data []byte, v any) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return &headerDecodeError{cause: err}
	}
	return nil
}

type headerDecodeError struct {
	cause error
}

func (e *headerDecodeError) Error() string {
	return "decode toml: " + e.cause.Error()
}

func (e *headerDecodeError) Unwrap() error {
	return e.cause
}

// opensWithDelimiter reports whether the first non-blank line is the delimiter.
func opensWithDelimiter(source []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(source))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return line == Delimiter
	}
	return false
}
