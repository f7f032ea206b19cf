package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMinifyFileCSS(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.css")
	dst := filepath.Join(dir, "out", "style.css")
	if err := os.WriteFile(src, []byte("\n\tbody {\n\t\tcolor: #fff;\n\t\tmargin: 0  ;\n\t}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	before, after, err := minifyFile(src, dst, "CSS")
	if err != nil {
		t.Fatalf("minifyFile: %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "body{color:#fff;margin:0}" {
		t.Errorf("minified CSS = %q", got)
	}
	if after >= before {
		t.Errorf("sizes %d -> %d did not shrink", before, after)
	}
}

func TestMinifyFileKeepsTemplateActions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "suggestions.html")
	dst := filepath.Join(dir, "dist", "suggestions.html")
	input := `{{define "suggestions"}}<div id="suggestions"   class="suggestions">  {{.text}}  </div>{{end}}`
	if err := os.WriteFile(src, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := minifyFile(src, dst, "html"); err != nil {
		t.Fatalf("minifyFile: %v", err)
	}
	got, _ := os.ReadFile(dst)
	for _, want := range []string{`{{define "suggestions"}}`, `{{.text}}`, `{{end}}`} {
		if !strings.Contains(string(got), want) {
			t.Errorf("minified HTML %q missing %q", got, want)
		}
	}
}

func TestMinifyFileUnsupportedType(t *testing.T) {
	if _, _, err := minifyFile("in", "out", "png"); err == nil {
		t.Error("expected error for unsupported type")
	}
}
