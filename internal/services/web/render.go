package web

import (
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/queenofhearts/internal/platform/errors"
	"github.com/louisbranch/queenofhearts/internal/services/shared/htmx"
	"github.com/louisbranch/queenofhearts/internal/services/web/templates"
	"golang.org/x/text/message"
)

// pageRenderer builds the shared page context for a request.
type pageRenderer struct {
	location *time.Location
}

func (p pageRenderer) page(r *http.Request, titleKey string) (templates.PageContext, *message.Printer) {
	printer, lang := localizer(r)
	return templates.PageContext{
		Title:       printer.Sprintf(titleKey),
		Lang:        lang,
		Loc:         printer,
		Location:    p.location,
		CurrentPath: r.URL.Path,
	}, printer
}

// outcome maps an operation error onto the response status and alert text.
// ok is false for errors that must not render a page.
func outcome(err error, printer *message.Printer) (status int, alert string, ok bool) {
	if err == nil || apperrors.IsSilent(err) {
		return http.StatusOK, "", true
	}
	if appErr, isAlert := apperrors.AsAlert(err); isAlert {
		return appErr.Code.HTTPStatus(), appErr.UserMessage(printer), true
	}
	return http.StatusInternalServerError, "", false
}

func writeServerError(w http.ResponseWriter, op string, err error) {
	log.Printf("web %s: %v", op, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func renderPage(w http.ResponseWriter, r *http.Request, page templates.PageContext, status int, full templ.Component) {
	htmx.Render(w, r, htmx.Page{
		Full:   full,
		Title:  htmx.TitleTag(page.Title),
		Status: status,
	})
}

func formInt(r *http.Request, key string) int64 {
	return idOrZero(r.FormValue(key))
}
