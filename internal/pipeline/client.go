package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/screenglance/screenglance/pkg/models"
)

// analyzeTimeout allows for OCR plus the remote model round trip
const analyzeTimeout = 60 * time.Second

// Analyzer submits a capture for analysis and returns the answer
type Analyzer interface {
	Analyze(ctx context.Context, imageData []byte, machineID string) (string, error)
}

// BackendClient implements Analyzer against the remote /analyze endpoint
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient creates an analyze client for the given base URL
func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: analyzeTimeout},
	}
}

// Analyze uploads the capture as multipart form data and returns the
// answer payload. Business-logic failures arrive as answer strings with a
// success status; an error here means the transport itself failed.
func (c *BackendClient) Analyze(ctx context.Context, imageData []byte, machineID string) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("image", "capture.png")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return "", fmt.Errorf("write image part: %w", err)
	}
	if err := form.WriteField("machine_id", machineID); err != nil {
		return "", fmt.Errorf("write machine id: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("analyze failed: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed models.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode analyze response: %w", err)
	}
	return parsed.Answer, nil
}
