package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mohammad-safakhou/finadvisor/config"
)

func localConfig(baseURL string) config.LocalLLMConfig {
	return config.LocalLLMConfig{
		Enabled:      true,
		BaseURL:      baseURL,
		Model:        "test-model",
		MaxNewTokens: 120,
		Temperature:  0.5,
		TopP:         0.9,
		Timeout:      5 * time.Second,
	}
}

func TestLocalRuntimeGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			var req struct {
				Model  string `json:"model"`
				Prompt string `json:"prompt"`
				Stream bool   `json:"stream"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if req.Model != "test-model" || req.Stream {
				t.Errorf("unexpected request: %+v", req)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"response": "Start with a written budget."})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := NewLocalRuntime(localConfig(srv.URL), nil)
	if !l.Available() {
		t.Fatal("runtime should be available")
	}
	got, err := l.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Start with a written budget." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestLocalRuntimeAvailabilityMemoized(t *testing.T) {
	var probes int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			atomic.AddInt32(&probes, 1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	l := NewLocalRuntime(localConfig(srv.URL), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Available()
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&probes); got != 1 {
		t.Fatalf("probe ran %d times, want exactly 1", got)
	}
}

func TestLocalRuntimeFailedProbeCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close() // unreachable on purpose

	l := NewLocalRuntime(localConfig(srv.URL), nil)
	if l.Available() {
		t.Fatal("unreachable runtime reported available")
	}
	// Repeated calls keep the cached failure.
	if l.Available() {
		t.Fatal("failed probe was not memoized")
	}
}

func TestLocalRuntimeDisabled(t *testing.T) {
	cfg := localConfig("http://localhost:1")
	cfg.Enabled = false
	l := NewLocalRuntime(cfg, nil)
	if l.Available() {
		t.Fatal("disabled runtime reported available")
	}
}

func TestLocalRuntimeGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	l := NewLocalRuntime(localConfig(srv.URL), nil)
	if _, err := l.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
