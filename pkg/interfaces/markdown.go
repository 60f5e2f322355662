package interfaces

// RenderOptions customises how course Markdown is parsed and rendered. Option
// names stay readable for configuration unmarshalling and CLI flags.
type RenderOptions struct {
	// Extensions lists goldmark extensions by name ("gfm", "table", "footnote", ...).
	// An empty list selects the default set.
	Extensions []string
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
	// Unsafe allows raw HTML embedded in course Markdown to pass through.
	Unsafe bool
}
