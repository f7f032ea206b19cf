package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "qordleweb/1.0"

	// maxBodyBytes bounds how much of an upstream reply is decoded.
	maxBodyBytes = 1 << 20
)

// Input supplies the current value of the guess field.
type Input interface {
	Value() string
}

// Display receives the rendered text of the output region.
type Display interface {
	SetText(text string)
}

// InputFunc adapts a function to Input.
type InputFunc func() string

func (f InputFunc) Value() string { return f() }

// StaticInput is an Input with a fixed value.
type StaticInput string

func (s StaticInput) Value() string { return string(s) }

// Logf matches log.Printf.
type Logf func(format string, v ...any)

// Config configures a Requester.
type Config struct {
	BaseURL string
	Variant Variant
	// Timeout bounds each upstream request; zero disables the deadline.
	Timeout time.Duration
	// CacheTTL keeps successful results per request path; zero disables caching.
	CacheTTL time.Duration
	// RequestsPerSecond limits outbound requests; zero means unlimited.
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
	Client            *http.Client
	Logf              Logf
}

// Requester sends guesses to a suggestion endpoint.
type Requester struct {
	base      *url.URL
	variant   Variant
	client    *http.Client
	limiter   *rate.Limiter
	cache     *ttlcache.Cache[string, []string]
	userAgent string
	logf      Logf
}

// New validates cfg and returns a Requester. Call Close when done.
func New(cfg Config) (*Requester, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", cfg.BaseURL)
	}
	if cfg.Variant == (Variant{}) {
		cfg.Variant = VariantQordle
	}
	if err := cfg.Variant.Validate(); err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	r := &Requester{
		base:      base,
		variant:   cfg.Variant,
		client:    client,
		limiter:   limiter,
		userAgent: cfg.UserAgent,
		logf:      cfg.Logf,
	}
	if r.userAgent == "" {
		r.userAgent = DefaultUserAgent
	}
	if r.logf == nil {
		r.logf = func(string, ...any) {}
	}
	if cfg.CacheTTL > 0 {
		r.cache = ttlcache.New[string, []string](
			ttlcache.WithTTL[string, []string](cfg.CacheTTL),
			ttlcache.WithDisableTouchOnHit[string, []string](),
		)
		go r.cache.Start()
	}
	return r, nil
}

// Close stops the cache expiration loop.
func (r *Requester) Close() {
	if r.cache != nil {
		r.cache.Stop()
	}
}

// Variant returns the endpoint variant in use.
func (r *Requester) Variant() Variant {
	return r.variant
}

// BaseURL returns the upstream base URL.
func (r *Requester) BaseURL() string {
	return r.base.String()
}

// URL returns the full request URL for guess.
func (r *Requester) URL(guess string) *url.URL {
	u := *r.base
	u.Path = strings.TrimSuffix(r.base.Path, "/") + BuildPath(r.variant, guess)
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return &u
}

// Request posts guess to the endpoint and returns the decoded suggestions.
// Every failure is reported as a Result matching ErrRequestFailed.
func (r *Requester) Request(ctx context.Context, guess string) Result {
	u := r.URL(guess)
	key := u.Path

	if r.cache != nil {
		if item := r.cache.Get(key); item != nil {
			r.logf("[INFO] suggest cache hit: %s", key)
			return Success(item.Value())
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		r.logf("[WARN] suggest rate limit wait for %s: %v", key, err)
		return Failure(err)
	}

	start := time.Now()
	suggestions, err := r.post(ctx, u)
	if err != nil {
		r.logf("[WARN] suggest POST %s failed after %v: %v", key, time.Since(start), err)
		return Failure(err)
	}
	r.logf("[INFO] suggest POST %s returned %d suggestions in %v", key, len(suggestions), time.Since(start))

	if r.cache != nil {
		r.cache.Set(key, suggestions, ttlcache.DefaultTTL)
	}
	return Success(suggestions)
}

func (r *Requester) post(ctx context.Context, u *url.URL) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var suggestions []string
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&suggestions); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	if suggestions == nil {
		return nil, errors.New("decode suggestions: null response")
	}
	return suggestions, nil
}

// Suggest reads the guess from in, requests suggestions and writes the
// rendered result to out. The result is returned for callers that log it.
func (r *Requester) Suggest(ctx context.Context, in Input, out Display) Result {
	res := r.Request(ctx, in.Value())
	out.SetText(Render(res))
	return res
}
