package templates

import (
	"github.com/a-h/templ"
	routepath "github.com/louisbranch/queenofhearts/internal/services/web/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// Layout wraps its children in the shared document shell. Children render
// inside <main id="main">, which is the HTMX swap target of every form.
func Layout(page PageContext) templ.Component {
	return markup(func(h *htmlWriter) {
		body := templ.GetChildren(h.ctx)
		h.ctx = templ.ClearChildren(h.ctx)

		h.raw(`<!DOCTYPE html><html lang="`)
		h.text(page.lang())
		h.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(page.Title)
		h.raw(`</title><script src="`)
		h.url(htmxScriptURL)
		h.raw(`" defer></script><script src="`)
		h.url(routepath.AppShellScript)
		h.raw(`" defer></script></head><body><header><strong>`)
		h.text(page.t("web.app.name"))
		h.raw(`</strong><nav>`)
		h.component(navLink(page, routepath.Root, "web.nav.home"))
		h.component(navLink(page, routepath.Player, "web.nav.player"))
		h.component(navLink(page, routepath.Admin, "web.nav.admin"))
		h.raw(`</nav></header><main id="main">`)
		h.component(body)
		h.raw(`</main></body></html>`)
	})
}

func navLink(page PageContext, path, key string) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<a href="`)
		h.url(path)
		h.raw(`"`)
		if page.CurrentPath == path {
			h.raw(` aria-current="page"`)
		}
		h.raw(`>`)
		h.text(page.t(key))
		h.raw(`</a>`)
	})
}

// alertBanner renders the refused-action message, if any.
func alertBanner(page PageContext) templ.Component {
	return markup(func(h *htmlWriter) {
		if page.Alert == "" {
			return
		}
		h.raw(`<div class="alert" role="alert">`)
		h.text(page.Alert)
		h.raw(`</div>`)
	})
}
