package session

import (
	"math/rand"
	"net/http"
)

// defaultUserAgents is the rotation pool of realistic desktop browser
// signatures. Kept as data so the evasion surface can be updated without
// touching control flow.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
}

// staticHeaders approximate the header set a real browser sends.
var staticHeaders = map[string]string{
	"Accept-Language":           "en-US,en;q=0.9",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Encoding":           "gzip, deflate, br",
	"DNT":                       "1",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// StealthScript overrides the navigator properties automation detectors
// probe before any page script runs.
const StealthScript = `
  Object.defineProperty(navigator, 'webdriver', { get: () => false });
  Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
  Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
  Object.defineProperty(navigator, 'platform', { get: () => 'Win32' });
  Object.defineProperty(navigator, 'cookieEnabled', { get: () => true });
`

// launchArgs disable the chromium features that break headless stability
// or leak automation signals.
var launchArgs = []string{
	"--no-sandbox",
	"--disable-blink-features=AutomationControlled",
	"--disable-dev-shm-usage",
	"--disable-gpu",
	"--no-first-run",
	"--disable-default-apps",
	"--disable-features=VizDisplayCompositor",
	"--window-size=1920,1080",
}

// Session is one rotated browser identity. It makes no network calls;
// it only carries configuration.
type Session struct {
	UserAgent      string
	Headers        map[string]string
	StealthScript  string
	LaunchArgs     []string
	ViewportWidth  int
	ViewportHeight int
}

// Builder constructs sessions from a user-agent pool.
type Builder struct {
	userAgents []string
}

// NewBuilder returns a builder using the given pool, or the default pool
// when none is provided.
func NewBuilder(userAgents []string) *Builder {
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}
	return &Builder{userAgents: userAgents}
}

// Build assembles a session with a user agent picked uniformly at random.
func (b *Builder) Build() *Session {
	headers := make(map[string]string, len(staticHeaders))
	for k, v := range staticHeaders {
		headers[k] = v
	}

	return &Session{
		UserAgent:      b.userAgents[rand.Intn(len(b.userAgents))],
		Headers:        headers,
		StealthScript:  StealthScript,
		LaunchArgs:     launchArgs,
		ViewportWidth:  1920,
		ViewportHeight: 1080,
	}
}

// ApplyHeaders sets the session identity on a plain HTTP request.
func (s *Session) ApplyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", s.UserAgent)
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}
}
