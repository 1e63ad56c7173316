package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"platecheck/internal/archive"
	applog "platecheck/internal/log"
	"platecheck/internal/nutrition"
	"platecheck/internal/recognition"
	"platecheck/internal/scans"
	"platecheck/internal/views/pages"
	"platecheck/internal/workspace"
	"platecheck/models"
)

const (
	defaultUploadField    = "image"
	defaultMaxUploadBytes = 10 << 20 // 10 MiB
	multipartOverhead     = 1 << 20
)

// Recognizer sends a photo to the recognition service.
type Recognizer interface {
	Recognize(ctx context.Context, image recognition.Image) (nutrition.RawResponse, error)
}

// ScanConfig controls photo uploads.
type ScanConfig struct {
	Recognizer     Recognizer
	UploadField    string
	MaxUploadBytes int64
}

type scanSettings struct {
	recognizer Recognizer
	uploadName string
	maxBytes   int64
}

var scanner scanSettings

// ConfigureScanning installs the recognition client and upload limits. A nil
// recognizer disables uploads.
func ConfigureScanning(cfg ScanConfig) {
	scanner = scanSettings{
		recognizer: cfg.Recognizer,
		uploadName: strings.TrimSpace(cfg.UploadField),
		maxBytes:   cfg.MaxUploadBytes,
	}
}

func (s scanSettings) enabled() bool {
	return s.recognizer != nil
}

func (s scanSettings) field() string {
	if s.uploadName == "" {
		return defaultUploadField
	}
	return s.uploadName
}

func (s scanSettings) limit() int64 {
	if s.maxBytes <= 0 {
		return defaultMaxUploadBytes
	}
	return s.maxBytes
}

var errPhotoTooLarge = errors.New("photo exceeds upload limit")

// Scan accepts a photo upload, sends it for recognition and replaces the
// session's result set with the normalised foods. Any failure leaves the
// previous result set in place and is reported as a single message.
func Scan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ws, err := currentWorkspace(r)
	if err != nil {
		applog.Error(r.Context(), "workspace unavailable", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	ctx := applog.WithAttrs(r.Context(), "workspace", ws.ID())

	if !scanner.enabled() {
		renderResults(w, r, ws.Snapshot(), errorMessage("Photo recognition is not configured on this server."))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, scanner.limit()+multipartOverhead)
	photo, err := readPhoto(r, scanner.field(), scanner.limit())
	if err != nil {
		applog.Error(ctx, "failed to read uploaded photo", "error", err)
		message := "We couldn't read that upload. Please choose an image and try again."
		if errors.Is(err, errPhotoTooLarge) {
			message = "That photo is too large. Please upload a smaller image."
		}
		renderResults(w, r, ws.Snapshot(), errorMessage(message))
		return
	}

	ticket, err := ws.BeginUpload()
	if err != nil {
		applog.Warn(ctx, "upload rejected", "error", err)
		renderResults(w, r, ws.Snapshot(), errorMessage("You're uploading too quickly. Please wait a moment and try again."))
		return
	}
	ctx = applog.WithAttrs(ctx, "upload", ticket.Seq)

	snapshot, message := processScan(ctx, ws, ticket, photo)
	renderResults(w, r, snapshot, message)
}

func processScan(ctx context.Context, ws *workspace.Workspace, ticket workspace.Ticket, photo archive.Photo) (workspace.Snapshot, pages.Message) {
	started := time.Now()
	record := &models.ScanRecord{
		WorkspaceID: ws.ID(),
		UploadSeq:   ticket.Seq,
		FileName:    photo.FileName,
		ContentType: photo.ContentType,
		SizeBytes:   int64(len(photo.Data)),
		ImageDigest: scans.Digest(photo.Data),
	}
	defer func() {
		record.DurationMS = time.Since(started).Milliseconds()
		if err := scanLog.Record(ctx, record); err != nil {
			applog.Error(ctx, "failed to record scan", "error", err)
		}
	}()

	key, err := archiver.Store(ctx, ws.ID(), photo)
	if err != nil {
		applog.Error(ctx, "failed to archive photo", "error", err)
	}
	record.ArchiveKey = key

	response, err := scanner.recognizer.Recognize(ctx, recognition.Image{
		FileName:    photo.FileName,
		ContentType: photo.ContentType,
		Data:        photo.Data,
	})
	if err != nil {
		applog.Error(ctx, "recognition failed", "error", err)
		record.Error = err.Error()
		return ws.Snapshot(), describeRecognitionError(err, record)
	}

	result := nutrition.Normalize(response)
	for _, skipped := range result.Skipped {
		applog.Warn(ctx, "skipping food without serving data", "name", skipped.Name, "error", skipped.Err)
	}
	record.ItemCount = len(result.Items)
	record.SkippedCount = len(result.Skipped)
	record.TotalCalories = nutrition.TotalCalories(result.Items)

	snapshot, err := ws.Commit(ticket, result, time.Now().UTC())
	if errors.Is(err, workspace.ErrStaleUpload) {
		applog.Info(ctx, "discarding superseded upload")
		record.Outcome = models.ScanOutcomeStale
		return snapshot, infoMessage("A newer upload replaced this one.")
	}

	record.Outcome = models.ScanOutcomeCommitted
	applog.Info(ctx, "scan committed", "items", record.ItemCount, "skipped", record.SkippedCount, "calories", record.TotalCalories)
	return snapshot, infoMessage(foundMessage(len(result.Items)))
}

func describeRecognitionError(err error, record *models.ScanRecord) pages.Message {
	var transportErr *recognition.TransportError
	switch {
	case errors.As(err, &transportErr):
		record.Outcome = models.ScanOutcomeTransport
		record.StatusCode = transportErr.StatusCode
		if transportErr.StatusCode > 0 {
			return errorMessage(fmt.Sprintf("Upload failed: the recognition service responded with %s. Please try again.", transportErr.Status))
		}
		return errorMessage("Upload failed: we couldn't reach the recognition service. Please try again.")
	case errors.Is(err, nutrition.ErrMalformedResponse):
		record.Outcome = models.ScanOutcomeMalformed
		return errorMessage("We couldn't process the recognition result. Please try another photo.")
	case errors.Is(err, recognition.ErrResponseTooLarge):
		record.Outcome = models.ScanOutcomeMalformed
		return errorMessage("The recognition result was too large to process. Please try another photo.")
	default:
		record.Outcome = models.ScanOutcomeFailed
		return errorMessage("Something went wrong while analyzing your photo. Please try again.")
	}
}

func foundMessage(count int) string {
	switch count {
	case 0:
		return "No foods with nutrition data were found."
	case 1:
		return "Found 1 food."
	default:
		return fmt.Sprintf("Found %d foods.", count)
	}
}

func readPhoto(r *http.Request, field string, limit int64) (archive.Photo, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return archive.Photo{}, errPhotoTooLarge
		}
		return archive.Photo{}, err
	}
	defer file.Close()

	if header.Size > limit {
		return archive.Photo{}, errPhotoTooLarge
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, io.LimitReader(file, limit+1)); err != nil {
		return archive.Photo{}, err
	}
	if int64(buf.Len()) > limit {
		return archive.Photo{}, errPhotoTooLarge
	}
	if buf.Len() == 0 {
		return archive.Photo{}, errors.New("empty upload")
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = mimeTypeFromName(header.Filename)
	}
	if mime == "application/octet-stream" {
		mime = http.DetectContentType(buf.Bytes())
	}

	return archive.Photo{
		FileName:    header.Filename,
		ContentType: mime,
		Data:        buf.Bytes(),
	}, nil
}

func mimeTypeFromName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	default:
		return "application/octet-stream"
	}
}

func errorMessage(text string) pages.Message {
	return pages.Message{Kind: "error", Text: text}
}

func infoMessage(text string) pages.Message {
	return pages.Message{Kind: "info", Text: text}
}
