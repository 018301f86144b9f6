package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/weathersage/sage/pkg/query"
	"github.com/weathersage/sage/pkg/shell"
)

// fakeProvider renders a bare marker element and counts Wrap calls.
type fakeProvider struct {
	wraps atomic.Int32
}

func (p *fakeProvider) Wrap(children templ.Component) templ.Component {
	p.wraps.Add(1)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<provider>"); err != nil {
			return err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</provider>")
		return err
	})
}

type fakeFonts struct {
	class string
	err   error
	loads atomic.Int32
}

func (f *fakeFonts) Load(string, ...string) (string, error) {
	f.loads.Add(1)
	return f.class, f.err
}

type fakeStylesheet struct {
	registrations atomic.Int32
}

func (s *fakeStylesheet) Register() (string, error) {
	s.registrations.Add(1)
	return "/static/globals.css", nil
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayout_HelloScenario(t *testing.T) {
	t.Parallel()

	s := shell.New(
		shell.WithProvider(&fakeProvider{}),
		shell.WithFontLoader(&fakeFonts{class: "font-x"}),
		shell.WithStylesheet(&fakeStylesheet{}),
	)

	out := render(t, s.Layout(templ.Raw("Hello")))

	require.True(t, strings.HasPrefix(out, `<!doctype html><html lang="en"><head>`))
	require.True(t, strings.HasSuffix(out, `<body class="font-x"><provider>Hello</provider></body></html>`))
}

func TestLayout_EmptyChildren(t *testing.T) {
	t.Parallel()

	s := shell.New(
		shell.WithProvider(&fakeProvider{}),
		shell.WithFontLoader(&fakeFonts{class: "font-x"}),
		shell.WithStylesheet(&fakeStylesheet{}),
	)

	out := render(t, s.Layout(nil))
	require.Contains(t, out, `<html lang="en">`)
	require.True(t, strings.HasSuffix(out, `<body class="font-x"><provider></provider></body></html>`))
}

func TestLayout_SingleProvider(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	s := shell.New(shell.WithProvider(p))

	out := render(t, s.Layout(templ.Raw("<p>page</p>")))
	require.Equal(t, int32(1), p.wraps.Load())
	require.Equal(t, 1, strings.Count(out, "<provider>"))
	require.Equal(t, 1, strings.Count(out, "<p>page</p>"))
}

func TestLayout_Metadata(t *testing.T) {
	t.Parallel()

	out := render(t, shell.New().Layout(templ.Raw("x")))
	require.Contains(t, out, `<title>Weather Sage</title>`)
	require.Contains(t, out, `<meta name="description" content="Let the weather sage brighten up your day">`)
	require.Contains(t, out, `<link rel="stylesheet" href="/static/globals.css?v=`)
}

func TestLayout_EscapesMetadata(t *testing.T) {
	t.Parallel()

	s := shell.New(shell.WithMetadata(shell.Metadata{Title: "A & B", Description: `say "hi"`}))
	out := render(t, s.Layout(nil))
	require.Contains(t, out, `<title>A &amp; B</title>`)
	require.Contains(t, out, `content="say &#34;hi&#34;"`)
}

func TestLayout_Idempotent(t *testing.T) {
	t.Parallel()

	fonts := &fakeFonts{class: "font-x"}
	styles := &fakeStylesheet{}
	s := shell.New(
		shell.WithProvider(&fakeProvider{}),
		shell.WithFontLoader(fonts),
		shell.WithStylesheet(styles),
	)

	page := templ.Raw("<main>weather</main>")
	first := render(t, s.Layout(page))
	second := render(t, s.Layout(page))

	require.Equal(t, first, second)
	require.Equal(t, int32(1), fonts.loads.Load(), "font is registered once")
	require.Equal(t, int32(1), styles.registrations.Load(), "stylesheet is registered once")
}

func TestLayout_IdempotentWithQueryProvider(t *testing.T) {
	t.Parallel()

	s := shell.New()
	page := templ.Raw("Hello")

	first := render(t, s.Layout(page))
	second := render(t, s.Layout(page))
	require.Equal(t, first, second)

	third := render(t, shell.New().Layout(page))
	require.Equal(t, first, third)
}

func TestLayout_WithQueryProvider(t *testing.T) {
	t.Parallel()

	var client *query.Client
	child := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		client = query.FromContext(ctx)
		_, err := io.WriteString(w, "Hello")
		return err
	})

	out := render(t, shell.New().Layout(child))

	require.NotNil(t, client)
	require.Equal(t, 1, strings.Count(out, "data-sage-provider"))
	require.Contains(t, out, `<div data-sage-provider data-endpoint="/api/trpc">Hello</div></body></html>`)

	body := out[strings.Index(out, "<body"):]
	require.Regexp(t, `^<body class="font-inter-[0-9a-f]{8}">`, body)
}

func TestLayout_FontFailurePropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("font asset unavailable")
	s := shell.New(shell.WithFontLoader(&fakeFonts{err: boom}))

	var buf bytes.Buffer
	err := s.Layout(templ.Raw("Hello")).Render(context.Background(), &buf)
	require.ErrorIs(t, err, boom)
	require.Empty(t, buf.String(), "nothing is written on failure")

	require.ErrorIs(t, s.Init(), boom, "failure is kept")
	require.Empty(t, s.FontClass())
}

func TestLayout_InvalidFontClass(t *testing.T) {
	t.Parallel()

	s := shell.New(shell.WithFontLoader(&fakeFonts{class: `x"><script>`}))
	require.ErrorIs(t, s.Init(), shell.ErrInvalidFontClass)

	s = shell.New(shell.WithFontLoader(&fakeFonts{class: ""}))
	require.ErrorIs(t, s.Init(), shell.ErrInvalidFontClass)
}

func TestLayout_InvalidMetadata(t *testing.T) {
	t.Parallel()

	s := shell.New(shell.WithMetadata(shell.Metadata{Title: "only title"}))
	require.ErrorIs(t, s.Init(), shell.ErrInvalidMetadata)
}

func TestLayout_ChildErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("child failed")
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	var buf bytes.Buffer
	err := shell.New().Layout(failing).Render(context.Background(), &buf)
	require.ErrorIs(t, err, boom)
}

func TestLayout_Scripts(t *testing.T) {
	t.Parallel()

	s := shell.New(shell.WithScript("/static/htmx.min.js"), shell.WithScript(""))
	out := render(t, s.Layout(nil))
	require.Equal(t, 1, strings.Count(out, "<script"))
	require.Contains(t, out, `<script src="/static/htmx.min.js" defer></script></head>`)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, shell.Default(), shell.Default())
	require.NoError(t, shell.Init())

	out := render(t, shell.Layout(templ.Raw("Hello")))
	require.Contains(t, out, `<html lang="en">`)
	require.Contains(t, out, `>Hello</div></body></html>`)
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	m := shell.DefaultMetadata()
	require.Equal(t, "Weather Sage", m.Title)
	require.Equal(t, "Let the weather sage brighten up your day", m.Description)
	require.NoError(t, m.Validate())

	m.Title = "changed"
	require.Equal(t, "Weather Sage", shell.DefaultMetadata().Title, "package record is immutable")

	require.ErrorIs(t, shell.Metadata{Description: "x"}.Validate(), shell.ErrInvalidMetadata)
	require.ErrorIs(t, shell.Metadata{Title: "x"}.Validate(), shell.ErrInvalidMetadata)
}

func TestFonts_Load(t *testing.T) {
	t.Parallel()

	f := shell.NewFonts()

	class, err := f.Load("Inter", "latin")
	require.NoError(t, err)
	require.Regexp(t, `^font-inter-[0-9a-f]{8}$`, class)

	again, err := f.Load("Inter")
	require.NoError(t, err)
	require.Equal(t, class, again, "latin is the default subset")

	multi, err := f.Load("Inter", "latin-ext", "latin")
	require.NoError(t, err)
	ordered, err := f.Load("Inter", "latin", "latin-ext")
	require.NoError(t, err)
	require.Equal(t, multi, ordered, "subset order does not matter")
	require.NotEqual(t, class, multi)

	_, err = f.Load(" ")
	require.ErrorIs(t, err, shell.ErrEmptyFontFamily)

	_, err = f.Load("Comic Sans")
	require.ErrorIs(t, err, shell.ErrUnknownFont)

	_, err = f.Load("Inter", "klingon")
	require.ErrorIs(t, err, shell.ErrUnknownSubset)
}

func TestEmbeddedStylesheet(t *testing.T) {
	t.Parallel()

	href, err := shell.NewEmbeddedStylesheet("/assets").Register()
	require.NoError(t, err)
	require.Regexp(t, `^/assets/globals\.css\?v=[0-9a-f]{8}$`, href)

	data, err := io.ReadAll(mustOpen(t, "assets/globals.css"))
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func mustOpen(t *testing.T, name string) io.Reader {
	t.Helper()

	f, err := shell.Assets().Open(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}
