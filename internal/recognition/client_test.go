package recognition

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"platecheck/internal/nutrition"
)

func TestNewClientRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{URL: "  "}); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestRecognizeUploadsSingleField(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			t.Errorf("expected photo field: %v", err)
			http.Error(w, "missing", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "jpegbytes" {
			t.Errorf("unexpected upload body %q", data)
		}
		if header.Filename != "lunch.jpg" {
			t.Errorf("Filename = %q", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"Banana": {"primary": {"serving_description": "1 medium", "calories": "105"}, "quantity": 1}, "Apple": {"secondary": []}}`)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{URL: srv.URL, APIKey: "secret", FieldName: "photo"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	response, err := client.Recognize(context.Background(), Image{FileName: "lunch.jpg", ContentType: "image/jpeg", Data: []byte("jpegbytes")})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if len(response) != 2 || response[0].Name != "Banana" || response[1].Name != "Apple" {
		t.Fatalf("unexpected response entries: %+v", response)
	}
}

func TestRecognizeReportsStatusAsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Recognize(context.Background(), Image{Data: []byte("x")})
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("StatusCode = %d, want %d", transportErr.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestRecognizeReportsNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewClient(Config{URL: url})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Recognize(context.Background(), Image{Data: []byte("x")})
	var transportErr *TransportError
	if !errors.As(err, &transportErr) || transportErr.StatusCode != 0 {
		t.Fatalf("expected network TransportError, got %v", err)
	}
}

func TestRecognizeRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `["not", "an", "object"]`)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Recognize(context.Background(), Image{Data: []byte("x")})
	if !errors.Is(err, nutrition.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRecognizeRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Banana": "`)
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxResponseBytes))
		_, _ = io.WriteString(w, `"}`)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Recognize(context.Background(), Image{Data: []byte("x")})
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("expected ErrResponseTooLarge, got %v", err)
	}
	if errors.Is(err, nutrition.ErrMalformedResponse) {
		t.Fatalf("oversized body reported as malformed: %v", err)
	}
}

func TestRecognizeRejectsEmptyImage(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{URL: "http://127.0.0.1:0"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Recognize(context.Background(), Image{}); err == nil {
		t.Fatal("expected error for empty image")
	}
}
