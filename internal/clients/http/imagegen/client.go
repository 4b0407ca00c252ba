package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// GeneratePath is the collaborator endpoint for design and try-on artwork.
const GeneratePath = "/generate-design"

const maxErrorBody = 4 << 10

// GenerateRequest is the wire shape of a generation call.
type GenerateRequest struct {
	Mode          string `json:"mode"`
	PromptText    string `json:"promptText,omitempty"`
	ImageData     string `json:"imageData,omitempty"`
	GarmentTypeID string `json:"garmentTypeId"`
	ColorHex      string `json:"colorHex"`
}

// GenerateResponse carries the URL of the produced image.
type GenerateResponse struct {
	ImageURL string `json:"imageUrl"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer from the collaborator.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("image generation API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("image generation API error: status %d: %s", e.StatusCode, e.Message)
}

// Client calls the image-generation service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client. A nil httpClient gets a traced client with the given timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("image generation base URL is required")
	}
	if httpClient == nil {
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient}, nil
}

// Generate performs exactly one POST; it never retries.
func (c *Client) Generate(ctx context.Context, payload GenerateRequest) (*GenerateResponse, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("image generation client not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call image generation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if strings.TrimSpace(result.ImageURL) == "" {
		return nil, errors.New("image generation API returned no image URL")
	}
	return &result, nil
}

func errorMessage(raw []byte, fallback string) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return fallback
}
