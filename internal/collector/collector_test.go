package collector

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SolveStreak/internal/model"
)

func TestLeetCodeFetcher_ReadsAllDifficulty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Variables map[string]string `json:"variables"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "alice", req.Variables["username"])

		w.Write([]byte(`{"data":{"matchedUser":{"submitStats":{"acSubmissionNum":[
			{"difficulty":"All","count":321,"submissions":900},
			{"difficulty":"Easy","count":200,"submissions":400}]}}}}`))
	}))
	defer srv.Close()

	f := NewLeetCodeFetcher(srv.URL, "alice", "", time.Second)
	got, err := f.FetchTotal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 321, got)
}

func TestLeetCodeFetcher_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unknown user", 200, `{"data":{"matchedUser":null}}`},
		{"no All entry", 200, `{"data":{"matchedUser":{"submitStats":{"acSubmissionNum":[]}}}}`},
		{"graphql error", 200, `{"errors":[{"message":"rate limited"}]}`},
		{"server error", 500, `oops`},
		{"bad json", 200, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewLeetCodeFetcher(srv.URL, "bob", "", time.Second).FetchTotal(context.Background())
			assert.Error(t, err)
		})
	}
}

func gfgServer(t *testing.T, profile, card string, profileStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/user/carol/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(profileStatus)
		w.Write([]byte(profile))
	})
	mux.HandleFunc("/card", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "carol", r.URL.Query().Get("username"))
		w.Write([]byte(card))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGFG(srv *httptest.Server) *GFGFetcher {
	return NewGFGFetcher(srv.URL+"/user/{username}/", srv.URL+"/card?username={username}", "carol", "", time.Second)
}

func TestGFGFetcher_Sources(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		status  int
		card    string
		want    int
		wantErr bool
	}{
		{
			name:    "profile page",
			profile: `<div class="score">Problem Solved</div><div class="x">
				<span>87 </span></div>`,
			status: 200,
			want:   87,
		},
		{
			name:    "card total when profile layout changed",
			profile: `<html>nothing here</html>`,
			status:  200,
			card:    `<text>Problem Solved</text><text x="1">45</text>`,
			want:    45,
		},
		{
			name:   "card per-level sum when profile is down",
			status: 503,
			card: `<text>School</text><text>1</text><text>Basic</text><text>2</text>
				<text>Easy</text><text>10</text><text>Medium</text><text>5</text><text>Hard</text><text>0</text>`,
			want: 18,
		},
		{
			name:    "nothing anywhere",
			status:  404,
			card:    `<svg></svg>`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := gfgServer(t, tt.profile, tt.card, tt.status)
			got, err := newGFG(srv).FetchTotal(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollector_FailuresBecomeMissing(t *testing.T) {
	primary := &MockFetcher{Total: 12}
	secondary := &MockFetcher{Err: errors.New("timeout")}
	c := NewCollector(map[string]Fetcher{
		model.CounterPrimary:   primary,
		model.CounterSecondary: secondary,
		"extra":                &MockFetcher{Total: -1},
	})

	got := c.Collect(context.Background())
	assert.Equal(t, map[string]model.Reading{
		model.CounterPrimary:   model.Observed(12),
		model.CounterSecondary: model.Missing(),
		"extra":                model.Missing(),
	}, got)
	assert.Equal(t, 1, primary.Calls)
	assert.Equal(t, 1, secondary.Calls)
}
