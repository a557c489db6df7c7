package main

import (
	"embed"
	"io/fs"
)

// The viewer served at "/". It is minified by the server at start-up.
//
//go:embed frontend/*.html frontend/*.css frontend/*.js
var viewer embed.FS

func frontendFS() (fs.FS, error) {
	return fs.Sub(viewer, "frontend")
}
