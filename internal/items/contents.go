package items

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
)

// Contents is the non-hidden listing of one content directory.
type Contents struct {
	dir     string
	entries map[string]bool
}

// ReadContents lists dir. Entries starting with "." are ignored.
func ReadContents(dir string) (Contents, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return Contents{}, compileerrors.IO(dir, err)
	}

	entries := make(map[string]bool, len(listing))
	for _, entry := range listing {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
				isDir = info.IsDir()
			}
		}
		entries[name] = isDir
	}
	return Contents{dir: dir, entries: entries}, nil
}

// Dir returns the listed directory.
func (c Contents) Dir() string {
	return c.dir
}

// HasFile reports whether name is a regular file in the listing.
func (c Contents) HasFile(name string) bool {
	isDir, ok := c.entries[name]
	return ok && !isDir
}

// HasDir reports whether name is a directory in the listing.
func (c Contents) HasDir(name string) bool {
	isDir, ok := c.entries[name]
	return ok && isDir
}

// Has reports whether name is present at all.
func (c Contents) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Dirs lists subdirectories in name order.
func (c Contents) Dirs() []string {
	return c.filter(true)
}

// Files lists files in name order.
func (c Contents) Files() []string {
	return c.filter(false)
}

// Names lists every entry in name order.
func (c Contents) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unexpected lists entries outside allowed, in name order.
func (c Contents) Unexpected(allowed ...string) []string {
	var out []string
	for _, name := range c.Names() {
		if !slices.Contains(allowed, name) {
			out = append(out, name)
		}
	}
	return out
}

func (c Contents) filter(dirs bool) []string {
	var out []string
	for _, name := range c.Names() {
		if c.entries[name] == dirs {
			out = append(out, name)
		}
	}
	return out
}
