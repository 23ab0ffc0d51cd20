package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotifier_SendWithRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottok/sendMessage", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "42", payload["chat_id"])
		assert.Equal(t, "hello", payload["text"])
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("tok", "42", "")
	tn.APIBase = srv.URL
	require.NoError(t, tn.sendWithBackoff(context.Background(), "hello", 3, time.Millisecond))
	assert.Equal(t, int32(3), calls.Load())
}

func TestTelegramNotifier_RetriesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("tok", "42", "")
	tn.APIBase = srv.URL
	err := tn.sendWithBackoff(context.Background(), "hello", 1, time.Millisecond)
	assert.ErrorContains(t, err, "all 2 retries exhausted")
}

func TestTelegramNotifier_PollingDispatchesCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	replies := make(chan string, 1)
	var polled atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/bottok/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		if polled.Add(1) == 1 {
			w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /streak "}}]}`))
			return
		}
		assert.Equal(t, "8", r.URL.Query().Get("offset"))
		<-r.Context().Done()
	})
	mux.HandleFunc("/bottok/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		replies <- payload["text"]
		w.Write([]byte(`{"ok":true}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tn := NewTelegramNotifier("tok", "42", "")
	tn.APIBase = srv.URL

	done := make(chan struct{})
	go func() {
		tn.StartPolling(ctx, func(_ context.Context, cmd string) string { return "got " + cmd })
		close(done)
	}()

	select {
	case reply := <-replies:
		assert.Equal(t, "got /streak", reply)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
}
