package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRunPrintsSuggestions(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["abcd","abce"]`))
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-base-url", srv.URL, "-variant", "api", "abc", "de"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "abcd abce\n" {
		t.Errorf("stdout = %q, want %q", got, "abcd abce\n")
	}
	if gotPath := <-paths; gotPath != "/suggest/abc,de" {
		t.Errorf("path = %q, want %q", gotPath, "/suggest/abc,de")
	}
}

func TestRunServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-base-url", srv.URL, "brain"}, &stdout, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if got := stdout.String(); got != "server error\n" {
		t.Errorf("stdout = %q, want %q", got, "server error\n")
	}
}

func TestRunCustomDelimiter(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-base-url", srv.URL, "-prefix", "/v2/s/", "-delimiter", ";", "a", "b"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if gotPath := <-paths; gotPath != "/v2/s/a;b" {
		t.Errorf("path = %q, want %q", gotPath, "/v2/s/a;b")
	}
}

func TestRunUnknownVariant(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-variant", "bogus", "x"}, &stdout, &stderr); code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
}
