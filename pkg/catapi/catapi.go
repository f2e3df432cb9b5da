package catapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CatAPI validates candidate breed names against an external registry.
type CatAPI interface {
	ValidateBreed(ctx context.Context, name string) error
}

// Breed is a single registry record. AltNames is a comma-separated list
// and is only present on some records.
type Breed struct {
	Name     string `json:"name"`
	AltNames string `json:"alt_names"`
}

var ErrUnknownBreed = errors.New("breed not found")

// HTTPError reports a non-200 registry response. Callers treat it as
// "upstream unavailable" and may retry the whole request.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

type CatAPIClient struct {
	url        string
	httpClient *http.Client
}

func NewCatAPIClient(url string, timeout time.Duration) *CatAPIClient {
	return &CatAPIClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ValidateBreed fetches the registry and matches name case-insensitively
// against every primary name and every trimmed alternate name. Breeds are
// not cached: every call validates against the live list, and a failed
// fetch is surfaced immediately without retrying.
func (c *CatAPIClient) ValidateBreed(ctx context.Context, name string) error {
	breeds, err := c.fetchAllBreeds(ctx)
	if err != nil {
		return err
	}

	candidate := strings.ToLower(strings.TrimSpace(name))
	for _, breed := range breeds {
		if strings.ToLower(breed.Name) == candidate {
			return nil
		}
		if breed.AltNames == "" {
			continue
		}
		for _, alt := range strings.Split(breed.AltNames, ",") {
			if strings.ToLower(strings.TrimSpace(alt)) == candidate {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownBreed, name)
}

func (c *CatAPIClient) fetchAllBreeds(ctx context.Context) ([]Breed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to the api failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", response.StatusCode),
		}
	}

	var breeds []Breed
	if err := json.NewDecoder(response.Body).Decode(&breeds); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return breeds, nil
}
