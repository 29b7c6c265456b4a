package app

import (
	"log/slog"
	"mime"
)

// staticTypes are the content types served under /static. Minimal container
// images ship without /etc/mime.types, so they are registered explicitly.
var staticTypes = map[string]string{
	".css":   "text/css; charset=utf-8",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff2": "font/woff2",
}

func init() {
	for ext, typ := range staticTypes {
		if mime.TypeByExtension(ext) != "" {
			continue
		}
		if err := mime.AddExtensionType(ext, typ); err != nil {
			slog.Warn("register static mime type", "ext", ext, "error", err)
		}
	}
}
