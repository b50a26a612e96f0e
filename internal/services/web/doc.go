// Package web serves the player wallet and admin console over HTTP.
//
// Pages render server-side as templ components. Forms post normally and also
// carry hx-post attributes so HTMX clients receive only the <main> fragment.
// Refused actions re-render the page with an inline alert and a 4xx status;
// silently ignored inputs re-render with 200.
package web
