// Package money formats integer currency units for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders whole dollars with thousands grouping, e.g. "$1,250".
func Format(amount int64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("$%d", -amount)
	}
	return printer.Sprintf("$%d", amount)
}

// FormatWith renders amount through p so callers can localize grouping.
func FormatWith(p *message.Printer, amount int64) string {
	if p == nil {
		return Format(amount)
	}
	if amount < 0 {
		return "-" + p.Sprintf("$%d", -amount)
	}
	return p.Sprintf("$%d", amount)
}
