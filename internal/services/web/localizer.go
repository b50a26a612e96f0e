package web

import (
	"net/http"

	"github.com/louisbranch/queenofhearts/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var languageMatcher = language.NewMatcher(catalog.Default().Tags())

// localizer resolves the request locale from Accept-Language and returns a
// message printer with the resolved language tag string.
func localizer(r *http.Request) (*message.Printer, string) {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.MustParse(catalog.BaseLocale)}
	}
	tag, _, _ := languageMatcher.Match(tags...)
	base, _ := tag.Base()
	return message.NewPrinter(tag), base.String()
}
