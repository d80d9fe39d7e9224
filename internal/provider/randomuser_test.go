package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const sampleBody = `{
  "results": [
    {
      "name": {"title": "Ms", "first": "Ada", "last": "Lovelace"},
      "dob": {"date": "1989-12-10T00:00:00Z", "age": 36},
      "location": {"city": "London", "country": "United Kingdom"},
      "picture": {"large": "https://randomuser.me/api/portraits/women/1.jpg"},
      "email": "ada.lovelace@example.com"
    },
    {
      "name": {"title": "Mr", "first": "Alan", "last": "Turing"},
      "dob": {"date": "1984-06-23T00:00:00Z", "age": 41},
      "location": {"city": "Wilmslow", "country": "United Kingdom"},
      "picture": {"large": "https://randomuser.me/api/portraits/men/2.jpg"},
      "email": "alan.turing@example.com"
    }
  ],
  "info": {"seed": "abc", "results": 2, "page": 1, "version": "1.4"}
}`

func newClient(url string, retries uint64) *RandomUser {
	return NewRandomUser(Options{BaseURL: url, Retries: retries, Backoff: time.Millisecond})
}

func TestFetchMapsProfiles(t *testing.T) {
	var gotResults string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/" {
			t.Errorf("path = %s, want /api/", r.URL.Path)
		}
		gotResults = r.URL.Query().Get("results")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	profiles, err := newClient(server.URL, 0).Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotResults != "2" {
		t.Errorf("results param = %q, want 2", gotResults)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}

	ada := profiles[0]
	if ada.Name != "Ada Lovelace" {
		t.Errorf("name = %q", ada.Name)
	}
	if ada.Age != 36 {
		t.Errorf("age = %d", ada.Age)
	}
	if ada.Location != "London, United Kingdom" {
		t.Errorf("location = %q", ada.Location)
	}
	if ada.Photo != "https://randomuser.me/api/portraits/women/1.jpg" {
		t.Errorf("photo = %q", ada.Photo)
	}
	if ada.Email != "ada.lovelace@example.com" {
		t.Errorf("email = %q", ada.Email)
	}
	if ada.Bio != "Hi, I'm Ada. I live in London. Love meeting new people!" {
		t.Errorf("bio = %q", ada.Bio)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	profiles, err := newClient(server.URL, 3).Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("got %d profiles, want 2", len(profiles))
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestFetchGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newClient(server.URL, 2).Fetch(context.Background(), 2)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newClient(server.URL, 5).Fetch(context.Background(), 2)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [`))
	}))
	defer server.Close()

	if _, err := newClient(server.URL, 0).Fetch(context.Background(), 2); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestFetchProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Uh oh, something has gone wrong."}`))
	}))
	defer server.Close()

	if _, err := newClient(server.URL, 0).Fetch(context.Background(), 2); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestFetchInvalidCount(t *testing.T) {
	c := newClient("http://127.0.0.1:0", 0)
	for _, n := range []int{0, -1, MaxBatchSize + 1} {
		if _, err := c.Fetch(context.Background(), n); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("Fetch(%d) err = %v, want ErrInvalidCount", n, err)
		}
	}
}
