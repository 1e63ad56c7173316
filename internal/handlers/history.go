package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "platecheck/internal/log"
	"platecheck/models"
)

const maxHistoryLimit = 100

type scanEntry struct {
	Upload        uint64    `json:"upload"`
	FileName      string    `json:"file_name"`
	ContentType   string    `json:"content_type"`
	SizeBytes     int64     `json:"size_bytes"`
	Digest        string    `json:"digest"`
	ArchiveKey    string    `json:"archive_key,omitempty"`
	Items         int       `json:"items"`
	Skipped       int       `json:"skipped"`
	TotalCalories int       `json:"total_calories"`
	Outcome       string    `json:"outcome"`
	StatusCode    int       `json:"status_code,omitempty"`
	Error         string    `json:"error,omitempty"`
	DurationMS    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

func newScanEntry(record models.ScanRecord) scanEntry {
	return scanEntry{
		Upload:        record.UploadSeq,
		FileName:      record.FileName,
		ContentType:   record.ContentType,
		SizeBytes:     record.SizeBytes,
		Digest:        record.ImageDigest,
		ArchiveKey:    record.ArchiveKey,
		Items:         record.ItemCount,
		Skipped:       record.SkippedCount,
		TotalCalories: record.TotalCalories,
		Outcome:       record.Outcome,
		StatusCode:    record.StatusCode,
		Error:         record.Error,
		DurationMS:    record.DurationMS,
		CreatedAt:     record.CreatedAt,
	}
}

// ScanHistory returns the most recent upload attempts of the session's
// workspace as JSON.
func ScanHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	limit := parseQueryInt(r, "limit", 0)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries := []scanEntry{}
	if ws, ok := existingWorkspace(r); ok {
		records, err := scanLog.Recent(r.Context(), ws.ID(), limit)
		if err != nil {
			applog.Error(r.Context(), "failed to load scan history", "workspace", ws.ID(), "error", err)
			http.Error(w, "unable to load scan history", http.StatusInternalServerError)
			return
		}
		for _, record := range records {
			entries = append(entries, newScanEntry(record))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		applog.Error(r.Context(), "failed to encode scan history", "error", err)
	}
}
