// Package provider fetches candidate profiles from the randomuser.me API.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mmynk/swiper/internal/models"
)

const (
	// DefaultBaseURL is the public randomuser.me endpoint.
	DefaultBaseURL = "https://randomuser.me"
	// DefaultBatchSize is how many profiles a session starts with.
	DefaultBatchSize = 20
	// MaxBatchSize is the largest batch the API hands out in one request.
	MaxBatchSize = 5000
)

var (
	// ErrUnavailable wraps every failure to obtain a batch.
	ErrUnavailable = errors.New("profile provider unavailable")
	// ErrInvalidCount is returned for batch sizes outside [1, MaxBatchSize].
	ErrInvalidCount = errors.New("invalid batch size")
)

// Fetcher returns a batch of candidate profiles.
type Fetcher interface {
	Fetch(ctx context.Context, count int) ([]models.Profile, error)
}

// Ensure RandomUser implements Fetcher
var _ Fetcher = (*RandomUser)(nil)

// Options configures a RandomUser client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// Retries is the number of extra attempts after the first failure.
	Retries uint64
	// Backoff is the base delay of the exponential backoff.
	Backoff time.Duration
}

// RandomUser is a client for the randomuser.me API.
type RandomUser struct {
	baseURL string
	client  *http.Client
	retries uint64
	backoff time.Duration
}

// NewRandomUser creates a RandomUser client.
func NewRandomUser(opts Options) *RandomUser {
	c := &RandomUser{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  opts.HTTPClient,
		retries: opts.Retries,
		backoff: opts.Backoff,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 10 * time.Second}
	}
	if c.backoff <= 0 {
		c.backoff = 200 * time.Millisecond
	}
	return c
}

// randomUserResponse mirrors the subset of the API payload we use.
type randomUserResponse struct {
	Results []randomUserResult `json:"results"`
	Error   string             `json:"error"`
}

type randomUserResult struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Dob struct {
		Age int `json:"age"`
	} `json:"dob"`
	Location struct {
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"location"`
	Picture struct {
		Large string `json:"large"`
	} `json:"picture"`
	Email string `json:"email"`
}

// Fetch requests count profiles, retrying transient failures.
func (c *RandomUser) Fetch(ctx context.Context, count int) ([]models.Profile, error) {
	if count < 1 || count > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	endpoint := c.baseURL + "/api/?" + url.Values{"results": {strconv.Itoa(count)}}.Encode()
	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff))

	attempt := 0
	profiles, err := retry.DoValue(ctx, backoff, func(ctx context.Context) ([]models.Profile, error) {
		attempt++
		profiles, err := c.fetchOnce(ctx, endpoint)
		if err != nil {
			slog.Warn("randomuser fetch failed", "attempt", attempt, "error", err)
		}
		return profiles, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	slog.Info("randomuser fetch ok", "count", len(profiles), "attempts", attempt)
	return profiles, nil
}

func (c *RandomUser) fetchOnce(ctx context.Context, endpoint string) ([]models.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		statusErr := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, retry.RetryableError(statusErr)
		}
		return nil, statusErr
	}

	var payload randomUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("provider error: %s", payload.Error)
	}

	profiles := make([]models.Profile, 0, len(payload.Results))
	for _, r := range payload.Results {
		profiles = append(profiles, toProfile(r))
	}
	return profiles, nil
}

// toProfile flattens an API record and derives the bio.
func toProfile(r randomUserResult) models.Profile {
	return models.Profile{
		Name:     r.Name.First + " " + r.Name.Last,
		Age:      r.Dob.Age,
		Location: r.Location.City + ", " + r.Location.Country,
		Photo:    r.Picture.Large,
		Email:    r.Email,
		Bio:      fmt.Sprintf("Hi, I'm %s. I live in %s. Love meeting new people!", r.Name.First, r.Location.City),
	}
}
