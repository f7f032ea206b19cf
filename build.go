//go:build ignore

// Builds dist/ with minified templates and static assets:
//
//	go run build.go
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// assetTypes maps file extensions to minifier media types.
var assetTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

func main() {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", (&html.Minifier{KeepDocumentTags: true, KeepEndTags: true}).Minify)
	m.AddFunc("application/javascript", js.Minify)

	for _, dir := range []string{"templates", "static"} {
		if err := minifyTree(m, dir, filepath.Join("dist", dir)); err != nil {
			log.Fatalf("Error minifying %s: %v", dir, err)
		}
	}
	fmt.Println("Minified assets written to dist/")
}

// minifyTree minifies every known asset under src into dst, copying others as-is.
func minifyTree(m *minify.M, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(out, 0755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if mediaType, ok := assetTypes[strings.ToLower(filepath.Ext(path))]; ok {
			minified, err := m.Bytes(mediaType, data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Printf("%s: %d -> %d bytes\n", path, len(data), len(minified))
			data = minified
		}
		return os.WriteFile(out, data, 0644)
	})
}
