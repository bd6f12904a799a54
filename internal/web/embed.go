// Package web holds the dashboard's HTML templates, embedded into the
// binary, and the echo.Renderer that executes them.
package web

import "embed"

//go:embed templates
var templateFS embed.FS
