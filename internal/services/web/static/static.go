package static

import "embed"

// FS exposes web static assets for HTTP serving.
//
//go:embed *.js
var FS embed.FS
