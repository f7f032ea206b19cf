package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// mediaTypes maps the -type flag to the minifier media type.
var mediaTypes = map[string]string{
	"css":  "text/css",
	"js":   "application/javascript",
	"html": "text/html",
}

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path")
		outputFile = flag.String("output", "", "Output file path")
		fileType   = flag.String("type", "", "File type (css, js, or html)")
	)
	flag.Parse()

	if *inputFile == "" || *outputFile == "" || *fileType == "" {
		log.Fatal("Usage: go run ./cmd/minify -input=<file> -output=<file> -type=<css|js|html>")
	}

	before, after, err := minifyFile(*inputFile, *outputFile, *fileType)
	if err != nil {
		log.Fatalf("Failed to minify %s: %v", *inputFile, err)
	}
	fmt.Printf("Minified %s -> %s (%d -> %d bytes)\n", *inputFile, *outputFile, before, after)
}

// newMinifier returns a minifier that understands every supported type.
func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", (&html.Minifier{KeepDocumentTags: true, KeepEndTags: true}).Minify)
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// minifyFile minifies src into dst and returns both sizes.
func minifyFile(src, dst, fileType string) (int, int, error) {
	mediaType, ok := mediaTypes[strings.ToLower(fileType)]
	if !ok {
		return 0, 0, fmt.Errorf("unsupported file type: %s (supported: css, js, html)", fileType)
	}

	input, err := os.ReadFile(src)
	if err != nil {
		return 0, 0, fmt.Errorf("read input: %w", err)
	}
	minified, err := newMinifier().Bytes(mediaType, input)
	if err != nil {
		return 0, 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, 0, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(dst, minified, 0644); err != nil {
		return 0, 0, fmt.Errorf("write output: %w", err)
	}
	return len(input), len(minified), nil
}
