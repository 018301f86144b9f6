package shell

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed assets/globals.css
var assets embed.FS

// Assets returns the embedded static files. globals.css lives under "assets".
func Assets() fs.FS {
	return assets
}

// Stylesheet registers the global stylesheet and returns the URL the
// document links to.
type Stylesheet interface {
	Register() (href string, err error)
}

// EmbeddedStylesheet serves assets/globals.css with a content hash in the
// URL so it can be cached forever.
type EmbeddedStylesheet struct {
	fsys   fs.FS
	name   string
	prefix string
}

// NewEmbeddedStylesheet returns the stylesheet for the embedded globals.css,
// linked under prefix (default "/static/").
func NewEmbeddedStylesheet(prefix string) *EmbeddedStylesheet {
	if prefix == "" {
		prefix = "/static/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &EmbeddedStylesheet{fsys: assets, name: "assets/globals.css", prefix: prefix}
}

// Register reads the stylesheet and returns its versioned URL.
func (s *EmbeddedStylesheet) Register() (string, error) {
	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStylesheet, err)
	}

	sum := sha256.Sum256(data)
	base := s.name[strings.LastIndex(s.name, "/")+1:]
	return s.prefix + base + "?v=" + hex.EncodeToString(sum[:4]), nil
}

var _ Stylesheet = (*EmbeddedStylesheet)(nil)
