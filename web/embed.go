// Package web holds the assets compiled into the server binary.
package web

import "embed"

// FS embeds web/static; the server mounts it at /static.
//
//go:embed static
var FS embed.FS
