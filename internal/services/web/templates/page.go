package templates

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
	"github.com/louisbranch/queenofhearts/internal/platform/money"
	"golang.org/x/text/message"
)

// timeLayout is the display layout for timestamps.
const timeLayout = "Jan 2, 2006, 3:04 PM"

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title       string
	Lang        string
	Loc         Localizer
	Location    *time.Location
	CurrentPath string
	// Alert is shown above the page content when an action was refused.
	Alert string
}

func (p PageContext) t(key string, args ...any) string {
	return T(p.Loc, key, args...)
}

func (p PageContext) formatTime(t time.Time) string {
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(timeLayout)
}

func (p PageContext) formatMoney(amount int64) string {
	if printer, ok := p.Loc.(*message.Printer); ok {
		return money.FormatWith(printer, amount)
	}
	return money.Format(amount)
}

func (p PageContext) lang() string {
	if p.Lang == "" {
		return "en"
	}
	return p.Lang
}

// htmlWriter keeps the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

// markup adapts render into a templ component. Output goes through the templ
// runtime buffer, so nested components share one buffer and flush once.
func markup(render func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) (err error) {
		buf, existing := templruntime.GetBuffer(w)
		if !existing {
			defer func() {
				if releaseErr := templruntime.ReleaseBuffer(buf); err == nil {
					err = releaseErr
				}
			}()
		}
		h := &htmlWriter{ctx: templ.InitializeContext(ctx), w: buf}
		render(h)
		return h.err
	})
}

// withLayout renders body as the children of Layout.
func withLayout(page PageContext, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Layout(page).Render(templ.WithChildren(ctx, body), w)
	})
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// url writes an attribute URL after templ sanitization.
func (h *htmlWriter) url(s string) {
	h.text(string(templ.URL(s)))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func (h *htmlWriter) empty(message string) {
	h.raw(`<div class="empty">`)
	h.text(message)
	h.raw(`</div>`)
}

func (h *htmlWriter) option(value, label string, selected bool) {
	h.raw(`<option value="`)
	h.text(value)
	h.raw(`"`)
	if selected {
		h.raw(` selected`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</option>`)
}

// formOpen starts a form that posts normally and swaps <main> under HTMX.
func (h *htmlWriter) formOpen(action, id string) {
	h.raw(`<form method="post" action="`)
	h.url(action)
	h.raw(`" hx-post="`)
	h.url(action)
	h.raw(`" hx-target="#main"`)
	if id != "" {
		h.raw(` id="`)
		h.text(id)
		h.raw(`"`)
	}
	h.raw(`>`)
}

func (h *htmlWriter) input(label, name, kind, value string, required bool) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(` <input type="`)
	h.text(kind)
	h.raw(`" name="`)
	h.text(name)
	h.raw(`" value="`)
	h.text(value)
	h.raw(`"`)
	if required {
		h.raw(` required`)
	}
	h.raw(`></label>`)
}

func (h *htmlWriter) button(label, class string) {
	h.raw(`<button type="submit" class="`)
	h.text(class)
	h.raw(`">`)
	h.text(label)
	h.raw(`</button>`)
}
