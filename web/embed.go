package web

import "embed"

// DistFS embeds the built single-page frontend.
//
//go:embed dist
var DistFS embed.FS
