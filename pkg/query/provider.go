package query

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// DefaultEndpoint is where Router.Handler is expected to be mounted.
const DefaultEndpoint = "/api/trpc"

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithLink sets the link used for clients the provider creates itself.
func WithLink(l Link) ProviderOption {
	return func(p *Provider) {
		p.link = l
	}
}

// WithEndpoint sets the endpoint advertised to the browser.
// Default: DefaultEndpoint.
func WithEndpoint(endpoint string) ProviderOption {
	return func(p *Provider) {
		if endpoint != "" {
			p.endpoint = endpoint
		}
	}
}

// Provider places one Client in the render context of the subtree it wraps.
type Provider struct {
	link     Link
	endpoint string
}

// NewProvider creates a provider.
func NewProvider(opts ...ProviderOption) *Provider {
	p := &Provider{endpoint: DefaultEndpoint}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wrap renders a single provider element around children. The client already
// in ctx is reused; otherwise one is created for this render. The markup does
// not depend on the client, so equal children render byte-identical output.
func (p *Provider) Wrap(children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c := FromContext(ctx)
		if c == nil {
			c = NewClient(p.link)
			ctx = WithClient(ctx, c)
		}

		open := `<div data-sage-provider data-endpoint="` + templ.EscapeString(p.endpoint) + `">`
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// Middleware installs one client per request so that everything rendered
// for the request shares it. A client already in the context is kept.
func Middleware(link Link) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if FromContext(r.Context()) == nil {
				r = r.WithContext(WithClient(r.Context(), NewClient(link)))
			}
			next.ServeHTTP(w, r)
		})
	}
}
