package license

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/screenglance/screenglance/pkg/models"
)

const verifyTimeout = 5 * time.Second

// Client asks the remote license authority whether a device identifier is
// authorized. It fails closed: any transport error, non-success status, or
// malformed response yields false, never true.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a license gate client for the given backend base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: verifyTimeout},
	}
}

// Authorized checks the identifier against the remote authority. Intended
// to be called exactly once at process startup; a false verdict is fatal
// to the caller, not retryable.
func (c *Client) Authorized(ctx context.Context, id string) bool {
	body, err := json.Marshal(models.VerifyRequest{MachineID: id})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var verdict models.VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false
	}
	return verdict.Allowed
}
