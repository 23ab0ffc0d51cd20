package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Default GeeksforGeeks sources. {username} is replaced with the escaped username.
const (
	DefaultGFGProfileURL = "https://www.geeksforgeeks.org/user/{username}/"
	DefaultGFGCardURL    = "https://geeks-for-geeks-stats-card.vercel.app/?username={username}"
)

var (
	profileSolvedRe = regexp.MustCompile(`(?is)Problem Solved.*?(\d+)\s*<`)
	cardSolvedRe    = regexp.MustCompile(`(?is)Problem Solved.*?>(\d+)<`)
	cardLevels      = []string{"School", "Basic", "Easy", "Medium", "Hard"}
	cardLevelRe     = make(map[string]*regexp.Regexp, len(cardLevels))
)

func init() {
	for _, level := range cardLevels {
		cardLevelRe[level] = regexp.MustCompile(`(?is)` + level + `.*?>(\d+)<`)
	}
}

// GFGFetcher scrapes the GeeksforGeeks profile page and falls back to the
// public stats card when the page layout does not match.
type GFGFetcher struct {
	ProfileURL string
	CardURL    string
	Client     *http.Client
}

// NewGFGFetcher creates a fetcher for username. Empty URL templates use the defaults.
func NewGFGFetcher(profileTmpl, cardTmpl, username, proxyURL string, timeout time.Duration) *GFGFetcher {
	if profileTmpl == "" {
		profileTmpl = DefaultGFGProfileURL
	}
	if cardTmpl == "" {
		cardTmpl = DefaultGFGCardURL
	}
	return &GFGFetcher{
		ProfileURL: strings.ReplaceAll(profileTmpl, "{username}", url.PathEscape(username)),
		CardURL:    strings.ReplaceAll(cardTmpl, "{username}", url.QueryEscape(username)),
		Client:     newHTTPClient(proxyURL, timeout),
	}
}

func (f *GFGFetcher) Name() string { return "geeksforgeeks" }

// FetchTotal tries the profile page first, then the stats card.
func (f *GFGFetcher) FetchTotal(ctx context.Context) (int, error) {
	total, profileErr := f.fetchProfile(ctx)
	if profileErr == nil {
		return total, nil
	}
	total, cardErr := f.fetchCard(ctx)
	if cardErr == nil {
		return total, nil
	}
	return 0, fmt.Errorf("gfg profile: %w; stats card: %w", profileErr, cardErr)
}

func (f *GFGFetcher) fetchProfile(ctx context.Context) (int, error) {
	html, err := f.get(ctx, f.ProfileURL, "text/html")
	if err != nil {
		return 0, err
	}
	if m := profileSolvedRe.FindStringSubmatch(html); m != nil {
		return strconv.Atoi(m[1])
	}
	return 0, ErrNotFound
}

func (f *GFGFetcher) fetchCard(ctx context.Context) (int, error) {
	svg, err := f.get(ctx, f.CardURL, "")
	if err != nil {
		return 0, err
	}
	if m := cardSolvedRe.FindStringSubmatch(svg); m != nil {
		return strconv.Atoi(m[1])
	}

	// Older cards only list per-level counts.
	total := 0
	for _, level := range cardLevels {
		if m := cardLevelRe[level].FindStringSubmatch(svg); m != nil {
			n, _ := strconv.Atoi(m[1])
			total += n
		}
	}
	if total > 0 {
		return total, nil
	}
	return 0, ErrNotFound
}

func (f *GFGFetcher) get(ctx context.Context, u, accept string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: status %d", u, resp.StatusCode)
	}
	return string(body), nil
}
