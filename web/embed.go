// Package web embeds the browser client: the page templates and the static
// script and stylesheet they reference.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var content embed.FS

// StaticFS returns the client assets served under /static/.
func StaticFS() fs.FS {
	return mustSub("static")
}

// TemplatesFS returns the html/template sources for the page shell.
func TemplatesFS() fs.FS {
	return mustSub("templates")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		// Only reachable if the embed directive and dir disagree.
		panic("web: " + err.Error())
	}
	return sub
}
