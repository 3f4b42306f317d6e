package web

import (
	"embed"
	"io/fs"
	"log"
)

// The back-office ships its stylesheet and page templates inside the binary.
//
//go:embed static templates
var content embed.FS

// StaticFS exposes the embedded static assets, rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-filesystem: %v", err)
	}
	return sub
}

// TemplatesFS exposes the embedded page templates, rooted at templates/.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		log.Fatalf("failed to create templates sub-filesystem: %v", err)
	}
	return sub
}
