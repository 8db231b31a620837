package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrLoadFailed marks every failure of LoadSpecies. Callers only need to know
// that the load failed; the wrapped cause is for logs.
var ErrLoadFailed = errors.New("species load failed")

// Loader resolves the species referenced by a film.
// This interface is implemented by *Client and can be used for testing.
type Loader interface {
	LoadSpecies(ctx context.Context, filmURL string) ([]Species, error)
}

// Ensure Client implements Loader at compile time.
var _ Loader = (*Client)(nil)

// Client talks to the Star Wars API.
type Client struct {
	http           *http.Client
	userAgent      string
	maxConcurrency int
}

// Options tune a Client. The zero value is usable.
type Options struct {
	Timeout        time.Duration // per request; zero uses defaultRequestTimeout
	MaxConcurrency int           // species fetches in flight; zero means one per URL
	UserAgent      string
	HTTPClient     *http.Client // overrides Timeout when set
}

const (
	defaultUserAgent      = "holocron/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency < 0 {
		maxConcurrency = 0
	}
	return &Client{
		http:           httpClient,
		userAgent:      userAgent,
		maxConcurrency: maxConcurrency,
	}
}

// FetchFilm retrieves a film document.
func (c *Client) FetchFilm(ctx context.Context, filmURL string) (*Film, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Film
	if err := c.get(ctx, filmURL, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSpecies retrieves a single species document.
func (c *Client) FetchSpecies(ctx context.Context, speciesURL string) (*Species, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Species
	if err := c.get(ctx, speciesURL, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// LoadSpecies fetches the film at filmURL and then every species it lists,
// concurrently. The result follows the film's species order. Any failure fails
// the whole load; no partial list is returned. Errors wrap ErrLoadFailed.
func (c *Client) LoadSpecies(ctx context.Context, filmURL string) ([]Species, error) {
	if c == nil {
		return nil, loadFailed(fmt.Errorf("client is nil"))
	}
	film, err := c.FetchFilm(ctx, filmURL)
	if err != nil {
		return nil, loadFailed(fmt.Errorf("fetch film: %w", err))
	}

	out := make([]Species, len(film.Species))
	g, gctx := errgroup.WithContext(ctx)
	if c.maxConcurrency > 0 {
		g.SetLimit(c.maxConcurrency)
	}
	for i, speciesURL := range film.Species {
		g.Go(func() error {
			sp, err := c.FetchSpecies(gctx, speciesURL)
			if err != nil {
				return fmt.Errorf("fetch species %d: %w", i, err)
			}
			out[i] = *sp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, loadFailed(err)
	}
	return out, nil
}

func loadFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrLoadFailed, err)
}

func (c *Client) get(ctx context.Context, rawURL string, dest any) error {
	u, err := ParseResourceURL(rawURL)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", u.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ParseResourceURL validates an absolute API URL. A bare host/path gets https.
func ParseResourceURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("resource url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse resource url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("resource url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("resource url %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}
