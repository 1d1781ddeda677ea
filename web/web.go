// Package web bundles the single-page frontend served by the API binary.
package web

import "embed"

//go:embed index.html app.js style.css
var Assets embed.FS
