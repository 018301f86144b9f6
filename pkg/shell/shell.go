package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/weathersage/sage/pkg/query"
)

const (
	fontFamily = "Inter"
	fontSubset = "latin"
)

// Provider wraps page content in the data-context provider.
// Wrap must render children exactly once.
type Provider interface {
	Wrap(children templ.Component) templ.Component
}

// Option configures a Shell.
type Option func(*Shell)

// WithProvider sets the data-context provider.
// Default: query.NewProvider().
func WithProvider(p Provider) Option {
	return func(s *Shell) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithFontLoader sets the webfont loader. Default: NewFonts().
func WithFontLoader(f FontLoader) Option {
	return func(s *Shell) {
		if f != nil {
			s.fonts = f
		}
	}
}

// WithStylesheet sets the global stylesheet.
// Default: NewEmbeddedStylesheet("/static/").
func WithStylesheet(st Stylesheet) Option {
	return func(s *Shell) {
		if st != nil {
			s.stylesheet = st
		}
	}
}

// WithMetadata overrides the head-tag metadata.
// Invalid metadata makes Init fail with ErrInvalidMetadata.
func WithMetadata(m Metadata) Option {
	return func(s *Shell) {
		s.metadata = m
	}
}

// WithScript adds a deferred script to the document head.
func WithScript(src string) Option {
	return func(s *Shell) {
		if src != "" {
			s.scripts = append(s.scripts, src)
		}
	}
}

// Shell is the root document wrapper. It is safe for concurrent use.
type Shell struct {
	provider   Provider
	fonts      FontLoader
	stylesheet Stylesheet
	metadata   Metadata
	scripts    []string

	once      sync.Once
	initErr   error
	fontClass string
	styleHref string
}

// New creates a shell. Collaborators not set via options use the defaults.
func New(opts ...Option) *Shell {
	s := &Shell{
		provider:   query.NewProvider(),
		fonts:      NewFonts(),
		stylesheet: NewEmbeddedStylesheet(""),
		metadata:   DefaultMetadata(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init registers the stylesheet and loads the webfont. It runs once; later
// calls return the first result.
func (s *Shell) Init() error {
	s.once.Do(func() {
		if err := s.metadata.Validate(); err != nil {
			s.initErr = err
			return
		}

		href, err := s.stylesheet.Register()
		if err != nil {
			s.initErr = err
			return
		}

		class, err := s.fonts.Load(fontFamily, fontSubset)
		if err != nil {
			s.initErr = fmt.Errorf("shell: load font %s: %w", fontFamily, err)
			return
		}
		if !validClass(class) {
			s.initErr = fmt.Errorf("shell: load font %s: %w: %q", fontFamily, ErrInvalidFontClass, class)
			return
		}

		s.styleHref = href
		s.fontClass = class
	})
	return s.initErr
}

// Metadata returns the head-tag metadata of the shell.
func (s *Shell) Metadata() Metadata {
	return s.metadata
}

// FontClass returns the body class token, or "" before a successful Init.
func (s *Shell) FontClass() string {
	if s.Init() != nil {
		return ""
	}
	return s.fontClass
}

// Layout returns the full document with children inside the provider.
// A nil children renders an empty provider.
func (s *Shell) Layout(children templ.Component) templ.Component {
	if children == nil {
		children = templ.NopComponent
	}
	body := s.provider.Wrap(children)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := s.Init(); err != nil {
			return err
		}

		if err := s.writeHead(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body class="`+templ.EscapeString(s.fontClass)+`">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func (s *Shell) writeHead(w io.Writer) error {
	m := s.metadata

	var b []byte
	b = append(b, `<!doctype html><html lang="en"><head>`...)
	b = append(b, `<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`...)
	b = append(b, `<title>`+templ.EscapeString(m.Title)+`</title>`...)
	b = append(b, `<meta name="description" content="`+templ.EscapeString(m.Description)+`">`...)
	b = append(b, `<link rel="stylesheet" href="`+templ.EscapeString(s.styleHref)+`">`...)
	b = append(b, `<style>.`+s.fontClass+`{font-family:"`+fontFamily+`",ui-sans-serif,system-ui,sans-serif}</style>`...)
	for _, src := range s.scripts {
		b = append(b, `<script src="`+templ.EscapeString(src)+`" defer></script>`...)
	}
	b = append(b, `</head>`...)

	_, err := w.Write(b)
	return err
}

// validClass accepts non-empty CSS identifiers made of [A-Za-z0-9_-].
func validClass(class string) bool {
	if class == "" {
		return false
	}
	return !strings.ContainsFunc(class, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' && r != '_'
	})
}

var (
	defaultOnce  sync.Once
	defaultShell *Shell
)

// Default returns the process-wide shell built with default collaborators.
func Default() *Shell {
	defaultOnce.Do(func() {
		defaultShell = New()
	})
	return defaultShell
}

// Init initializes the process default shell. Call it at boot to fail fast.
func Init() error {
	return Default().Init()
}

// Layout renders children inside the process default shell.
func Layout(children templ.Component) templ.Component {
	return Default().Layout(children)
}
