package recognition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	applog "platecheck/internal/log"
	"platecheck/internal/nutrition"
)

const (
	defaultFieldName = "image"
	defaultTimeout   = 60 * time.Second
	maxResponseBytes = 4 << 20 // 4 MiB
)

// ErrResponseTooLarge reports a recognition response larger than the client
// is willing to buffer.
var ErrResponseTooLarge = errors.New("recognition: response too large")

// Config describes how the recognition client should be initialised.
type Config struct {
	URL        string
	APIKey     string
	FieldName  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client uploads food photos to the recognition service.
type Client struct {
	url        string
	apiKey     string
	fieldName  string
	httpClient *http.Client
}

// Image is a photo ready to be sent for recognition.
type Image struct {
	FileName    string
	ContentType string
	Data        []byte
}

// TransportError reports a network failure or a non-success status from the
// recognition service.
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("recognition: service returned status %s", e.Status)
	}
	return fmt.Sprintf("recognition: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewClient builds a Client for the service at cfg.URL.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("recognition: service url must not be empty")
	}

	fieldName := strings.TrimSpace(cfg.FieldName)
	if fieldName == "" {
		fieldName = defaultFieldName
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &Client{
		url:        url,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		fieldName:  fieldName,
		httpClient: httpClient,
	}, nil
}

// Recognize uploads image as a single-field multipart form and decodes the
// service's per-food response. Transport problems yield a *TransportError;
// an unusable body yields an error wrapping nutrition.ErrMalformedResponse.
func (c *Client) Recognize(ctx context.Context, image Image) (nutrition.RawResponse, error) {
	if len(image.Data) == 0 {
		return nil, errors.New("recognition: image must not be empty")
	}

	body, contentType, err := c.encodeUpload(image)
	if err != nil {
		return nil, fmt.Errorf("recognition: encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("recognition: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	applog.Debug(ctx, "recognition service responded",
		"status", resp.StatusCode,
		"elapsed", time.Since(started).String(),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	if len(raw) > maxResponseBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBytes)
	}

	response, err := nutrition.DecodeResponseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("recognition: %w", err)
	}
	return response, nil
}

func (c *Client) encodeUpload(image Image) (io.Reader, string, error) {
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	fileName := strings.TrimSpace(image.FileName)
	if fileName == "" {
		fileName = "upload"
	}
	contentType := strings.TrimSpace(image.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, c.fieldName, fileName))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}
