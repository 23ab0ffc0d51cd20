package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when a response carries no solved count.
var ErrNotFound = errors.New("solved count not found")

// userAgent mimics a desktop browser; both sources reject bare Go clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves one "total solved" counter.
type Fetcher interface {
	FetchTotal(ctx context.Context) (int, error)
	Name() string
}

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
