// Package web holds the browser front-end: a page with the name inputs, the grid
// and the start and restart buttons, talking to /ws.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// FS - the files to serve at the site root.
func FS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}

	return sub
}
