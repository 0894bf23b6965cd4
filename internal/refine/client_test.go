package refine

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/promptrefiner/internal/attachment"
	"github.com/csheth/promptrefiner/internal/input"
)

type capturedPart struct {
	field       string
	filename    string
	contentType string
	body        string
}

func captureParts(t *testing.T, r *http.Request) []capturedPart {
	t.Helper()
	reader, err := r.MultipartReader()
	require.NoError(t, err)
	var parts []capturedPart
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		parts = append(parts, capturedPart{
			field:       part.FormName(),
			filename:    part.FileName(),
			contentType: part.Header.Get("Content-Type"),
			body:        string(data),
		})
	}
	return parts
}

func TestRefineSendsTextOnly(t *testing.T) {
	var parts []capturedPart
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, EndpointPath, r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))
		parts = captureParts(t, r)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"core_intent":{"summary":"Tractor hailing","primary_goal":"Match farmers","target_audience":"Farmers"},"specifications":{"functional_requirements":["Booking","Tracking"]}}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	result, err := client.Refine(context.Background(), input.State{Text: "Build an app for tractors"})
	require.NoError(t, err)

	require.Len(t, parts, 1)
	assert.Equal(t, textField, parts[0].field)
	assert.Equal(t, "Build an app for tractors", parts[0].body)
	assert.Equal(t, "Tractor hailing", result.CoreIntent().Summary.Value)
	assert.Equal(t, []string{"Booking", "Tracking"}, result.FunctionalRequirements())
}

func TestRefineSendsFilesInOrderWithoutText(t *testing.T) {
	var parts []capturedPart
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts = captureParts(t, r)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	state := input.State{Files: []attachment.File{
		{Name: "sketch.png", MIMEType: "image/png", Data: []byte("png-bytes")},
		{Name: "brief.pdf", MIMEType: "application/pdf", Data: []byte("pdf-bytes")},
	}}
	_, err := New(Config{BaseURL: server.URL + "/"}).Refine(context.Background(), state)
	require.NoError(t, err)

	require.Len(t, parts, 2)
	assert.Equal(t, capturedPart{field: filesField, filename: "sketch.png", contentType: "image/png", body: "png-bytes"}, parts[0])
	assert.Equal(t, capturedPart{field: filesField, filename: "brief.pdf", contentType: "application/pdf", body: "pdf-bytes"}, parts[1])
}

func TestRefineReportsStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"model exploded"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Refine(context.Background(), input.State{Text: "x"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, statusErr.Body, "model exploded")
}

func TestRefineRejectsNonObjectBodies(t *testing.T) {
	for _, body := range []string{"", "not json", "null", `["a"]`, `"text"`} {
		body := body
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := New(Config{BaseURL: server.URL}).Refine(context.Background(), input.State{Text: "x"})
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestRefineWrapsTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(Config{BaseURL: url}).Refine(context.Background(), input.State{Text: "x"})
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestNewDefaultsBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/api/refine", New(Config{}).Endpoint())
}

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{}
	assert.Same(t, custom, pickHTTPClient(custom))
	assert.Zero(t, pickHTTPClient(nil).Timeout)
}
