package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func newTestClient(baseURL string, opts ...Option) *Client {
	all := append([]Option{
		WithBaseURL(baseURL),
		WithMinInterval(0),
		WithMaxRetries(0),
	}, opts...)
	return NewClient(all...)
}

func cardJSON(name string) string {
	return fmt.Sprintf(`{"object":"card","id":"f295b713-1d6a-43fd-910d-fb35414bf58a","name":%q,"set":"lea"}`, name)
}

func TestPacingEnforcesMinimumGap(t *testing.T) {
	const interval = 50 * time.Millisecond

	var mu sync.Mutex
	var arrivals []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		mu.Unlock()
		fmt.Fprint(w, cardJSON("Lightning Bolt"))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithMinInterval(interval))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.GetCardByName(ctx, "Lightning Bolt", true, ""); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(arrivals) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(arrivals))
	}
	for i := 1; i < len(arrivals); i++ {
		if gap := arrivals[i].Sub(arrivals[i-1]); gap < interval-10*time.Millisecond {
			t.Errorf("gap %d was %v, want at least ~%v", i, gap, interval)
		}
	}
}

func TestRateLimitedRequestRetriesThenSucceeds(t *testing.T) {
	const backoff = 20 * time.Millisecond

	var mu sync.Mutex
	count := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		n := count
		count++
		mu.Unlock()
		if n < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, cardJSON("Counterspell"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, WithMaxRetries(3), WithInitialBackoff(backoff))

	start := time.Now()
	card, err := c.GetCardByName(context.Background(), "Counterspell", true, "")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if card.Name != "Counterspell" {
		t.Errorf("unexpected card name %q", card.Name)
	}

	mu.Lock()
	n := count
	mu.Unlock()
	if n != 3 {
		t.Errorf("expected 3 requests (2 rate limited + 1 success), got %d", n)
	}

	// Backoff doubles each retry: 20ms + 40ms.
	if elapsed := time.Since(start); elapsed < 3*backoff {
		t.Errorf("elapsed %v, want at least %v of accumulated backoff", elapsed, 3*backoff)
	}
}

func TestRateLimitRetriesExhausted(t *testing.T) {
	var mu sync.Mutex
	count := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		count++
		mu.Unlock()
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, WithMaxRetries(2), WithInitialBackoff(time.Millisecond))

	_, err := c.GetCardByName(context.Background(), "Black Lotus", true, "")
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rateErr.Retries != 2 {
		t.Errorf("reported retries = %d, want 2", rateErr.Retries)
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 3 {
		t.Errorf("expected 3 requests (initial + 2 retries), got %d", count)
	}
}

func TestErrorBodyWinsOverStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Scryfall can attach an error payload to a 200.
		fmt.Fprint(w, `{"object":"error","code":"not_found","status":404,"details":"No card found"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.GetCardByName(context.Background(), "Nonexistent Card", true, "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "not_found" || apiErr.Status != 404 {
		t.Errorf("unexpected error payload: %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false, want true")
	}
}

func TestStructuredErrorOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"object":"error","code":"bad_request","status":400,"details":"Invalid query"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.SearchCards(context.Background(), ")))", SearchOptions{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Details != "Invalid query" {
		t.Errorf("details = %q", apiErr.Details)
	}
}

func TestOpaqueServerErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.ListSets(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", transportErr.Status)
	}
}

type countingRoundTripper struct {
	mu    sync.Mutex
	count int
}

func (rt *countingRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	rt.mu.Lock()
	rt.count++
	rt.mu.Unlock()
	return nil, errors.New("connection refused")
}

func TestNetworkErrorIsNotRetried(t *testing.T) {
	rt := &countingRoundTripper{}
	c := newTestClient("http://scryfall.invalid",
		WithMaxRetries(3),
		WithHTTPClient(&http.Client{Transport: rt}),
	)

	_, err := c.ListSets(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.count != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", rt.count)
	}
}

func TestMalformedSuccessBodyIsNotRetried(t *testing.T) {
	var mu sync.Mutex
	count := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		count++
		mu.Unlock()
		fmt.Fprint(w, `{"object":"card","name":`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, WithMaxRetries(3))

	if _, err := c.GetCardByName(context.Background(), "Shock", true, ""); err == nil {
		t.Fatal("expected decode error, got nil")
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", count)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotUA, gotAccept, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `{"object":"list","not_found":[],"data":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, WithUserAgent("deck-tools/2.0"))

	_, err := c.GetCollection(context.Background(), []CardIdentifier{{Name: "Shock"}})
	if err != nil {
		t.Fatalf("collection lookup: %v", err)
	}
	if gotUA != "deck-tools/2.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestMultiValuedHeadersPreserved(t *testing.T) {
	var gotPrefer []string
	var gotUA []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Values("Prefer")
		gotUA = r.Header.Values("User-Agent")
		fmt.Fprint(w, `{"object":"list","has_more":false,"data":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	header := http.Header{}
	header.Add("Prefer", "respond-async")
	header.Add("Prefer", "wait=10")
	header.Add("User-Agent", "deck-tools/2.0")
	if err := c.do(context.Background(), endpoint{
		method: http.MethodGet,
		path:   "/sets",
		header: header,
	}, nil); err != nil {
		t.Fatalf("do: %v", err)
	}

	if len(gotPrefer) != 2 || gotPrefer[0] != "respond-async" || gotPrefer[1] != "wait=10" {
		t.Errorf("Prefer values = %v, want both entries", gotPrefer)
	}
	// Caller headers replace the defaults rather than stacking on them.
	if len(gotUA) != 1 || gotUA[0] != "deck-tools/2.0" {
		t.Errorf("User-Agent values = %v, want the caller's only", gotUA)
	}
}

func TestSearchQueryEncoding(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{
			"q":      r.URL.Query().Get("q"),
			"unique": r.URL.Query().Get("unique"),
			"order":  r.URL.Query().Get("order"),
			"dir":    r.URL.Query().Get("dir"),
			"page":   r.URL.Query().Get("page"),
		}
		fmt.Fprint(w, `{"object":"list","total_cards":0,"has_more":false,"data":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.SearchCards(context.Background(), "c:u t:instant", SearchOptions{
		Unique: "prints", Order: "usd", Direction: "desc", Page: 2,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := map[string]string{
		"q": "c:u t:instant", "unique": "prints", "order": "usd", "dir": "desc", "page": "2",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("query %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestGetCardByIDRejectsNonUUID(t *testing.T) {
	rt := &countingRoundTripper{}
	c := newTestClient("http://scryfall.invalid", WithHTTPClient(&http.Client{Transport: rt}))

	for _, id := range []string{"", "not-a-uuid", "12345"} {
		_, err := c.GetCardByID(context.Background(), id)
		var inputErr *InvalidInputError
		if !errors.As(err, &inputErr) {
			t.Errorf("id %q: expected InvalidInputError, got %v", id, err)
		}
	}
	_, err := c.GetRulings(context.Background(), "bogus")
	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Errorf("rulings: expected InvalidInputError, got %v", err)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.count != 0 {
		t.Errorf("expected no network requests, got %d", rt.count)
	}
}

func TestCardRawCapture(t *testing.T) {
	var card Card
	data := `{"object":"card","name":"Shock","set":"m21","prices":{"usd":"0.05","eur":null}}`
	if err := json.Unmarshal([]byte(data), &card); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	raw := card.Raw()
	if raw == nil {
		t.Fatal("Raw() = nil after unmarshal")
	}
	prices, ok := raw["prices"].(map[string]any)
	if !ok {
		t.Fatal("raw prices missing")
	}
	if prices["usd"] != "0.05" {
		t.Errorf("raw usd = %v", prices["usd"])
	}
	if card.Prices.USD == nil || *card.Prices.USD != "0.05" {
		t.Errorf("typed usd = %v", card.Prices.USD)
	}
	if card.Prices.EUR != nil {
		t.Errorf("typed eur = %v, want nil", *card.Prices.EUR)
	}
}
