package statsfeed

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
	"github.com/riskibarqy/liga-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/liga-fantasy/internal/usecase"
)

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:    baseURL,
		Token:      "feed-token",
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
	})
}

func TestClient_FetchStats_DecodesEnvelope(t *testing.T) {
	var gotAuth, gotSport atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		gotSport.Store(r.URL.Query().Get("sport"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"name":"Gustavo Almeida","team":"Persija Jakarta","matches":"11","goals":"7","minutes_played":"870","yellow_cards":"2"},
			{"name":"Marc Klok","team":"Persib Bandung","matches":"10","goals":"3","minutes_played":"-"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	records, err := client.FetchStats(t.Context(), player.SportFootball)
	if err != nil {
		t.Fatalf("fetch stats failed: %v", err)
	}

	if gotAuth.Load() != "Bearer feed-token" {
		t.Fatalf("expected bearer token header, got %v", gotAuth.Load())
	}
	if gotSport.Load() != "football" {
		t.Fatalf("expected sport query, got %v", gotSport.Load())
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Gustavo Almeida" || records[0].RealTeam != "Persija Jakarta" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
	if records[0].Sport != player.SportFootball {
		t.Fatalf("expected football sport tag, got %s", records[0].Sport)
	}
	// Counters stay raw strings; interpretation belongs to the scoring pass.
	if records[1].MinutesPlayed != "-" {
		t.Fatalf("expected raw minutes value, got %q", records[1].MinutesPlayed)
	}
}

func TestClient_FetchStats_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"name":"Marc Klok","team":"Persib Bandung"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	records, err := client.FetchStats(t.Context(), player.SportFootball)
	if err != nil {
		t.Fatalf("fetch stats failed after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestClient_FetchStats_NonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown feed"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	if _, err := client.FetchStats(t.Context(), player.SportFutsal); err == nil {
		t.Fatal("expected an error for status 404")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt for non-retryable status, got %d", calls.Load())
	}
}

func TestClient_FetchStats_CircuitOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchStats(t.Context(), player.SportFootball); err == nil {
			t.Fatalf("expected attempt %d to fail", i+1)
		}
	}

	before := calls.Load()
	_, err := client.FetchStats(t.Context(), player.SportFootball)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open circuit, got %v", err)
	}
	if calls.Load() != before {
		t.Fatal("open circuit must not reach the upstream feed")
	}
}

func TestClient_FetchStats_RequiresBaseURL(t *testing.T) {
	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	if _, err := client.FetchStats(t.Context(), player.SportFootball); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable without base url, got %v", err)
	}
}
