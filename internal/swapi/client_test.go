package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// newSWAPIServer serves one film listing n species. Earlier species answer
// later so completion order is the reverse of request order.
func newSWAPIServer(t *testing.T, n int, failIndex int) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/films/2/" {
			film := Film{Title: "The Empire Strikes Back", EpisodeID: 5}
			for i := 0; i < n; i++ {
				film.Species = append(film.Species, fmt.Sprintf("%s/api/species/%d/", server.URL, i))
			}
			_ = json.NewEncoder(w).Encode(film)
			return
		}
		var idx int
		if _, err := fmt.Sscanf(r.URL.Path, "/api/species/%d/", &idx); err != nil {
			http.NotFound(w, r)
			return
		}
		if idx == failIndex {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		time.Sleep(time.Duration(n-idx) * 10 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(Species{
			Name:          fmt.Sprintf("species-%d", idx),
			AverageHeight: Height(fmt.Sprint(100 + idx)),
			Films:         []string{"f1"},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoadSpecies_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	server := newSWAPIServer(t, 5, -1)
	c := NewClient(Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	got, err := c.LoadSpecies(ctx, server.URL+"/api/films/2/")
	if err != nil {
		t.Fatalf("LoadSpecies returned error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("LoadSpecies returned %d species, want 5", len(got))
	}
	for i, sp := range got {
		want := fmt.Sprintf("species-%d", i)
		if sp.Name != want {
			t.Fatalf("species[%d].Name = %q, want %q", i, sp.Name, want)
		}
	}
}

func TestLoadSpecies_AnyFailureFailsWholeLoad(t *testing.T) {
	t.Parallel()

	server := newSWAPIServer(t, 4, 2)
	c := NewClient(Options{})

	got, err := c.LoadSpecies(context.Background(), server.URL+"/api/films/2/")
	if err == nil {
		t.Fatalf("LoadSpecies returned nil error, want failure")
	}
	if got != nil {
		t.Fatalf("LoadSpecies returned partial list %#v, want nil", got)
	}
	if !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("error = %v, want it to wrap ErrLoadFailed", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("error = %v, want status 500 cause", err)
	}
}

func TestLoadSpecies_RootFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad-json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c := NewClient(Options{})

	cases := []struct {
		name string
		url  string
		want string
	}{
		{"decode", server.URL + "/bad-json", "decode response"},
		{"status", server.URL + "/missing", "returned status 404"},
		{"empty url", "   ", "resource url is empty"},
		{"bad scheme", "ftp://example.com/films/2/", "unsupported scheme"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.LoadSpecies(context.Background(), tc.url)
			if err == nil {
				t.Fatalf("LoadSpecies(%q) returned nil error", tc.url)
			}
			if !errors.Is(err, ErrLoadFailed) {
				t.Fatalf("error = %v, want it to wrap ErrLoadFailed", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadSpecies_EmptyListIsNonNil(t *testing.T) {
	t.Parallel()

	server := newSWAPIServer(t, 0, -1)
	got, err := NewClient(Options{}).LoadSpecies(context.Background(), server.URL+"/api/films/2/")
	if err != nil {
		t.Fatalf("LoadSpecies returned error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("LoadSpecies = %#v, want empty non-nil slice", got)
	}
}

func TestLoadSpecies_RespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/film" {
			film := Film{}
			for i := 0; i < 6; i++ {
				film.Species = append(film.Species, fmt.Sprintf("%s/species/%d", server.URL, i))
			}
			_ = json.NewEncoder(w).Encode(film)
			return
		}
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		_ = json.NewEncoder(w).Encode(Species{Name: r.URL.Path})
	}))
	t.Cleanup(server.Close)

	c := NewClient(Options{MaxConcurrency: 2})
	got, err := c.LoadSpecies(context.Background(), server.URL+"/film")
	if err != nil {
		t.Fatalf("LoadSpecies returned error: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("LoadSpecies returned %d species, want 6", len(got))
	}
	if p := peak.Load(); p > 2 {
		t.Fatalf("peak in-flight requests = %d, want <= 2", p)
	}
}

func TestLoadSpecies_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := newSWAPIServer(t, 2, -1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Options{}).LoadSpecies(ctx, server.URL+"/api/films/2/")
	if err == nil {
		t.Fatalf("LoadSpecies returned nil error, want cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestClient_SetsHeaders(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewEncoder(w).Encode(Species{Name: "Yoda's species"})
	}))
	t.Cleanup(server.Close)

	sp, err := NewClient(Options{}).FetchSpecies(context.Background(), server.URL+"/api/species/6/")
	if err != nil {
		t.Fatalf("FetchSpecies returned error: %v", err)
	}
	if sp.Name != "Yoda's species" {
		t.Fatalf("Name = %q, want Yoda's species", sp.Name)
	}
	if !strings.HasPrefix(gotUserAgent, "holocron/") {
		t.Fatalf("User-Agent = %q, want holocron/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
}

func TestParseResourceURL(t *testing.T) {
	u, err := ParseResourceURL("swapi.dev/api/films/2/#top")
	if err != nil {
		t.Fatalf("ParseResourceURL returned error: %v", err)
	}
	if u.String() != "https://swapi.dev/api/films/2/" {
		t.Fatalf("ParseResourceURL = %q, want https://swapi.dev/api/films/2/", u.String())
	}
	if _, err := ParseResourceURL("http:///nohost"); err == nil {
		t.Fatalf("ParseResourceURL returned nil error for missing host")
	}
}

func TestNilClient(t *testing.T) {
	var c *Client
	if _, err := c.LoadSpecies(context.Background(), "https://swapi.dev/api/films/2/"); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("nil client LoadSpecies error = %v, want ErrLoadFailed", err)
	}
}
