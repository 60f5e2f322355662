// Package markdown holds the Markdown side of course compilation: splitting
// content files into a TOML frontmatter header and body, parsing bodies with
// goldmark, flattening the goldmark AST into an event stream that the
// annotation injector rewrites, and turning the rewritten stream back into an
// AST for HTML rendering.
package markdown
