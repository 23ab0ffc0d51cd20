package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultLeetCodeEndpoint is the public GraphQL endpoint.
const DefaultLeetCodeEndpoint = "https://leetcode.com/graphql"

const leetCodeQuery = `
query userProblemsSolved($username: String!) {
    allQuestionsCount {
        difficulty
        count
    }
    matchedUser(username: $username) {
        submitStats {
            acSubmissionNum {
                difficulty
                count
                submissions
            }
        }
    }
}`

// LeetCodeFetcher implements Fetcher using the LeetCode GraphQL API.
type LeetCodeFetcher struct {
	Endpoint string
	Username string
	Client   *http.Client
}

// NewLeetCodeFetcher creates a fetcher with optional proxy support.
func NewLeetCodeFetcher(endpoint, username, proxyURL string, timeout time.Duration) *LeetCodeFetcher {
	if endpoint == "" {
		endpoint = DefaultLeetCodeEndpoint
	}
	return &LeetCodeFetcher{
		Endpoint: endpoint,
		Username: username,
		Client:   newHTTPClient(proxyURL, timeout),
	}
}

func (f *LeetCodeFetcher) Name() string { return "leetcode" }

// leetCodeResponse is the subset of the GraphQL response we read.
type leetCodeResponse struct {
	Data struct {
		MatchedUser *struct {
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
		} `json:"matchedUser"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchTotal returns the accepted count for difficulty "All".
func (f *LeetCodeFetcher) FetchTotal(ctx context.Context) (int, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     leetCodeQuery,
		"variables": map[string]string{"username": f.Username},
	})
	if err != nil {
		return 0, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("leetcode fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("leetcode read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("leetcode: status %d, body: %.200s", resp.StatusCode, string(body))
	}

	var out leetCodeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("leetcode decode: %w", err)
	}
	if len(out.Errors) > 0 {
		return 0, fmt.Errorf("leetcode api error: %s", out.Errors[0].Message)
	}
	if out.Data.MatchedUser == nil {
		return 0, fmt.Errorf("leetcode user %q: %w", f.Username, ErrNotFound)
	}
	for _, item := range out.Data.MatchedUser.SubmitStats.AcSubmissionNum {
		if item.Difficulty == "All" {
			return item.Count, nil
		}
	}
	return 0, fmt.Errorf("leetcode difficulty All: %w", ErrNotFound)
}
