package templates

import "embed"

// Files holds the page and partial templates rendered by the HTTP host.
//
//go:embed *.html
var Files embed.FS
