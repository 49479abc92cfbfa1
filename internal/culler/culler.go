package culler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/collector/internal/model"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark   *model.Bookmark
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // Error message for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Params configures CheckURLs.
type Params struct {
	Concurrency    int           // <= 0 = DefaultConcurrency
	Timeout        time.Duration // per request, <= 0 = DefaultTimeout
	ExcludeDomains []string      // 404s here count as possibly private, not dead
	Client         *http.Client  // nil = client built from Timeout
	OnProgress     ProgressFunc
}

// Defaults for Params.
const (
	DefaultConcurrency = 10
	DefaultTimeout     = 10 * time.Second
)

// CheckURLs checks all bookmark URLs concurrently. Results are in the
// order of bookmarks. Cancelling ctx marks the remaining URLs unreachable.
func CheckURLs(ctx context.Context, bookmarks []model.Bookmark, params Params) []Result {
	if len(bookmarks) == 0 {
		return nil
	}

	concurrency := params.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	client := params.Client
	if client == nil {
		client = newClient(params.Timeout)
	}

	// Build exclude map for fast lookup
	excludeMap := make(map[string]bool)
	for _, domain := range params.ExcludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	results := make([]Result, len(bookmarks))

	var progressMu sync.Mutex
	completed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range bookmarks {
		g.Go(func() error {
			results[i] = checkURL(ctx, client, &bookmarks[i], excludeMap)

			if params.OnProgress != nil {
				progressMu.Lock()
				completed++
				params.OnProgress(completed, len(bookmarks))
				progressMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail; problems are recorded per result

	return results
}

func newClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow redirects but limit to 10
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// checkURL checks a single URL and returns the result.
func checkURL(ctx context.Context, client *http.Client, bookmark *model.Bookmark, excludeMap map[string]bool) Result {
	result := Result{
		Bookmark: bookmark,
	}

	// Try HEAD first (faster, less bandwidth)
	resp, err := do(ctx, client, http.MethodHead, bookmark.URL)
	if err != nil {
		// HEAD failed, try GET as fallback (some servers don't support HEAD)
		resp, err = do(ctx, client, http.MethodGet, bookmark.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		// Check if this domain is excluded (e.g., private repos)
		if isExcludedDomain(bookmark.URL, excludeMap) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// Other errors (500, 403, etc.) could be temporary or need auth
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain checks if the URL's host is an excluded domain or one
// of its subdomains.
func isExcludedDomain(rawURL string, excludeMap map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if excludeMap[host] {
		return true
	}
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
