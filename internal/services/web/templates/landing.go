package templates

import (
	"github.com/a-h/templ"
	routepath "github.com/louisbranch/queenofhearts/internal/services/web/routepath"
)

// LandingPage renders the entry page linking to both surfaces.
func LandingPage(page PageContext) templ.Component {
	return withLayout(page, landingBody(page))
}

func landingBody(page PageContext) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section class="hero"><h1>`)
		h.text(page.t("web.landing.title"))
		h.raw(`</h1><p>`)
		h.text(page.t("web.landing.tagline"))
		h.raw(`</p><p><a class="btn" href="`)
		h.url(routepath.Player)
		h.raw(`">`)
		h.text(page.t("web.landing.player"))
		h.raw(`</a> <a class="btn ghost" href="`)
		h.url(routepath.Admin)
		h.raw(`">`)
		h.text(page.t("web.landing.admin"))
		h.raw(`</a></p></section>`)
	})
}
