// Package consoletest runs the whole console against an in-memory Redis and
// a scripted backend for handler tests.
package consoletest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hmc-console/hmc-console/internal/app"
	_ "github.com/hmc-console/hmc-console/testing"
)

// Call is one request received by the fake backend.
type Call struct {
	Method        string
	Path          string
	Authorization string
	Body          []byte
}

// Harness bundles a running console and its collaborators.
type Harness struct {
	Redis   *miniredis.Miniredis
	Backend *http.ServeMux
	Console *httptest.Server
	Client  *http.Client

	mu    sync.Mutex
	calls []Call
}

// New starts the console. Routes registered on Backend are served under
// /api; anything unregistered answers 404.
func New(t *testing.T) *Harness {
	t.Helper()

	h := &Harness{
		Redis:   miniredis.RunT(t),
		Backend: http.NewServeMux(),
	}
	backend := httptest.NewServer(http.HandlerFunc(h.serveBackend))
	t.Cleanup(backend.Close)

	client := redis.NewClient(&redis.Options{Addr: h.Redis.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &app.Config{
		AppEnv:                "test",
		AppRequestTimeout:     5 * time.Second,
		APIBaseURL:            backend.URL + "/api",
		APITimeout:            2 * time.Second,
		SessionSecret:         "test-session-secret",
		SessionTTL:            time.Hour,
		CSRFSecret:            "test-csrf-secret",
		SubmitGuardTTL:        time.Hour,
		NotFoundRedirectDelay: 3 * time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler, err := app.NewConsole(cfg, logger, client, nil)
	if err != nil {
		t.Fatalf("build console: %v", err)
	}
	h.Console = httptest.NewServer(handler)
	t.Cleanup(h.Console.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	h.Client = &http.Client{
		Jar:     jar,
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return h
}

func (h *Harness) serveBackend(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	h.mu.Lock()
	h.calls = append(h.calls, Call{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
	h.mu.Unlock()
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	h.Backend.ServeHTTP(w, r)
}

// Calls returns the backend requests seen so far.
func (h *Harness) Calls() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Call(nil), h.calls...)
}

// CallsTo returns the backend requests matching method and path.
func (h *Harness) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range h.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// SignIn plants an authenticated session holding token and hands its
// cookie to Client.
func (h *Harness) SignIn(t *testing.T, token string) {
	t.Helper()
	id := uuid.NewString()
	payload, err := json.Marshal(map[string]any{
		"values":  map[string]string{"jwtToken": token},
		"flashes": []any{},
	})
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	if err := h.Redis.Set("hmc:session:"+id, string(payload)); err != nil {
		t.Fatalf("store session: %v", err)
	}
	u, err := url.Parse(h.Console.URL)
	if err != nil {
		t.Fatalf("parse console url: %v", err)
	}
	h.Client.Jar.SetCookies(u, []*http.Cookie{{Name: app.SessionCookieName, Value: id, Path: "/"}})
}

// Get fetches path from the console and returns the response with its body
// read.
func (h *Harness) Get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	res, err := h.Client.Get(h.Console.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return res, readBody(t, res)
}

// Post sends form to path as-is.
func (h *Harness) Post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	res, err := h.Client.PostForm(h.Console.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return res, readBody(t, res)
}

var (
	csrfField   = regexp.MustCompile(`name="csrf_token" value="([^"]*)"`)
	submitField = regexp.MustCompile(`name="submit_token" value="([^"]*)"`)
)

// Submit loads page like a browser, copies its CSRF and submit tokens into
// form and posts it to action.
func (h *Harness) Submit(t *testing.T, page, action string, form url.Values) (*http.Response, string) {
	t.Helper()
	_, body := h.Get(t, page)
	csrf := csrfField.FindStringSubmatch(body)
	if csrf == nil {
		t.Fatalf("no csrf token on %s", page)
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", csrf[1])
	if submit := submitField.FindStringSubmatch(body); submit != nil {
		form.Set("submit_token", submit[1])
	}
	return h.Post(t, action, form)
}

// Follow fetches the Location of a redirect response.
func (h *Harness) Follow(t *testing.T, res *http.Response) (*http.Response, string) {
	t.Helper()
	if res.StatusCode != http.StatusSeeOther && res.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", res.StatusCode)
	}
	return h.Get(t, res.Header.Get("Location"))
}

// JSON writes v as a backend JSON response.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode unmarshals a recorded request body.
func Decode(t *testing.T, c Call, dst any) {
	t.Helper()
	if err := json.Unmarshal(c.Body, dst); err != nil {
		t.Fatalf("decode %s %s body: %v", c.Method, c.Path, err)
	}
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}
