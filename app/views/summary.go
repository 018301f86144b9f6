package views

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/weathersage/sage/pkg/sage"
)

// SummaryTarget is the element id HTMX swaps the summary card into.
const SummaryTarget = "summary"

// refreshTrigger polls for a new summary every 15 minutes.
const refreshTrigger = "every 900s"

// Home renders the landing page body around the summary card.
func Home(sum sage.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<main><header class="sage-header"><h1>Weather Sage</h1>`)
		hw.raw(`<p class="sage-tagline">Let the weather sage brighten up your day</p></header>`)
		hw.raw(`<section id="` + SummaryTarget + `" hx-get="/summary" hx-trigger="` + refreshTrigger + `" hx-swap="innerHTML">`)
		if hw.err != nil {
			return hw.err
		}
		if err := SummaryCard(sum).Render(ctx, w); err != nil {
			return err
		}
		hw.raw(`</section></main>`)
		return hw.err
	})
}

// SummaryCard renders one hourly summary.
// The markdown summary is rendered to sanitized HTML; every other field is
// plain text.
func SummaryCard(sum sage.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := sum.SummaryHTML()
		if err != nil {
			return err
		}

		hw := &htmlWriter{w: w}
		hw.raw(`<article class="sage-card">`)
		hw.raw(`<p class="sage-meta">`)
		if sum.Location != "" {
			hw.text(sum.Location)
			hw.raw(` &middot; `)
		}
		hw.raw(`<time datetime="` + templ.EscapeString(sum.Hour.Format(time.RFC3339)) + `">`)
		hw.text(formatHour(sum.Hour))
		hw.raw(`</time></p>`)
		hw.raw(`<div class="sage-summary">`)
		if hw.err != nil {
			return hw.err
		}
		if err := templ.Raw(body).Render(ctx, w); err != nil {
			return err
		}
		hw.raw(`</div>`)
		if sum.InspiringMessage != "" {
			hw.raw(`<blockquote class="sage-message">`)
			hw.text(sum.InspiringMessage)
			hw.raw(`</blockquote>`)
		}
		if len(sum.Clothing) > 0 {
			hw.raw(`<h2>What to wear</h2>`)
			hw.list("sage-clothing", sum.Clothing)
		}
		if len(sum.Activities) > 0 {
			hw.raw(`<h2>What to do</h2>`)
			hw.list("sage-activities", sum.Activities)
		}
		hw.raw(`</article>`)
		return hw.err
	})
}
