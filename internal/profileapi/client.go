package profileapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutriguide/internal/domain"
	"nutriguide/internal/service"
)

// Client implements service.ProfileStore over the profile HTTP API, for
// deployments where the assistant runs apart from the profile backend.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ service.ProfileStore = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Save posts the profile. A 409 means the profile already exists and counts
// as success; other failures map to the store sentinels so the interview can
// show the right retry message.
func (c *Client) Save(ctx context.Context, profile domain.Profile) error {
	body, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", service.ErrStoreUnreachable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// Already exists: the interview outcome is the same.
		return nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: status=%d", service.ErrProfileInvalid, resp.StatusCode)
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status=%d", service.ErrStoreUnavailable, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status=%d", service.ErrStoreInternal, resp.StatusCode)
	}
}

// Get looks a profile up by user id.
func (c *Client) Get(ctx context.Context, userID string) (domain.Profile, error) {
	endpoint := c.baseURL + "/api/user?userId=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", service.ErrStoreUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Profile{}, service.ErrProfileNotFound
	}
	if resp.StatusCode >= 400 {
		return domain.Profile{}, fmt.Errorf("%w: status=%d", service.ErrStoreInternal, resp.StatusCode)
	}

	var payload struct {
		Profile domain.Profile `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return payload.Profile, nil
}
