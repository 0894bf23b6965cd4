// Package refine talks to the prompt refinement backend.
package refine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"

	"github.com/csheth/promptrefiner/internal/input"
)

const (
	// EndpointPath is where the backend accepts submissions.
	EndpointPath = "/api/refine"

	// DefaultBaseURL matches the port the backend listens on out of the box.
	DefaultBaseURL = "http://localhost:8080"

	textField  = "text_input"
	filesField = "files"

	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 512
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("refine API error: %s", e.Status)
	}
	return fmt.Sprintf("refine API error: %s (%s)", e.Status, e.Body)
}

// Refiner submits one input snapshot and returns the decoded result.
type Refiner interface {
	Refine(ctx context.Context, state input.State) (Result, error)
}

// Config describes how to reach the backend.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client posts multipart submissions to the backend.
type Client struct {
	endpoint string
	client   *http.Client
}

func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		endpoint: base + EndpointPath,
		client:   pickHTTPClient(cfg.HTTPClient),
	}
}

// Endpoint returns the absolute submission URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// No client-side timeout: a request runs until the backend answers or the
// transport fails.
func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{}
}

// Refine issues exactly one POST and never retries.
func (c *Client) Refine(ctx context.Context, state input.State) (Result, error) {
	body, contentType, err := EncodeMultipart(state)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Result{}, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	log.Printf("[refine] POST %s id=%s text=%d files=%d", c.endpoint, requestID, len(state.Text), len(state.Files))
	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   truncate(strings.TrimSpace(string(raw)), maxErrorBody),
		}
	}
	return Decode(raw)
}

// EncodeMultipart builds the request body. text_input is only written when
// the text is non-empty; every file becomes one "files" part in selection
// order.
func EncodeMultipart(state input.State) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if state.Text != "" {
		if err := writer.WriteField(textField, state.Text); err != nil {
			return nil, "", fmt.Errorf("write %s: %w", textField, err)
		}
	}
	for _, file := range state.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(filesField), quoteEscaper.Replace(file.Name)))
		contentType := file.MIMEType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create part for %s: %w", file.Name, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write part for %s: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "…"
}
