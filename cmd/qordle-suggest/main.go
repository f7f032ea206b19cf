package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"qordleweb/internal/suggest"
)

// writerDisplay prints the output region to a writer.
type writerDisplay struct {
	w io.Writer
}

func (d writerDisplay) SetText(text string) {
	fmt.Fprintln(d.w, text)
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("qordle-suggest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		baseURL   = fs.String("base-url", envOr("SUGGEST_BASE_URL", "http://localhost:9090"), "Suggestion service base URL")
		variant   = fs.String("variant", envOr("SUGGEST_VARIANT", "qordle"), "Endpoint variant ("+strings.Join(suggest.VariantNames(), ", ")+")")
		prefix    = fs.String("prefix", "", "Override the variant's route prefix")
		delimiter = fs.String("delimiter", "", "Override the variant's token delimiter")
		timeout   = fs.Duration("timeout", suggest.DefaultTimeout, "Request timeout (0 for none)")
		verbose   = fs.Bool("v", false, "Log request details to stderr")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: qordle-suggest [flags] guess...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	v, err := suggest.LookupVariant(*variant)
	if err != nil {
		fmt.Fprintf(stderr, "qordle-suggest: %v\n", err)
		return 2
	}
	if *prefix != "" {
		v.RoutePrefix = *prefix
	}
	if *delimiter != "" {
		v.Delimiter = *delimiter
	}

	logger := log.New(stderr, "", log.LstdFlags)
	cfg := suggest.Config{
		BaseURL: *baseURL,
		Variant: v,
		Timeout: *timeout,
	}
	if *verbose {
		cfg.Logf = logger.Printf
	}
	r, err := suggest.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "qordle-suggest: %v\n", err)
		return 2
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	guess := strings.Join(fs.Args(), " ")
	res := r.Suggest(ctx, suggest.StaticInput(guess), writerDisplay{w: stdout})
	if !res.OK() {
		if *verbose {
			logger.Printf("[WARN] %v", res.Err)
		}
		return 1
	}
	if *verbose {
		logger.Printf("[INFO] %d suggestions in %v", len(res.Suggestions), time.Since(start))
	}
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
