package models

import (
	"gorm.io/gorm"
)

// Scan outcomes recorded in ScanRecord.Outcome.
const (
	ScanOutcomeCommitted = "committed"
	ScanOutcomeStale     = "stale"
	ScanOutcomeTransport = "transport_error"
	ScanOutcomeMalformed = "malformed_response"
	ScanOutcomeFailed    = "failed"
)

// ScanRecord is the audit entry written for every photo upload attempt.
type ScanRecord struct {
	gorm.Model
	WorkspaceID   string `gorm:"index;size:27;not null" json:"workspace_id"`
	UploadSeq     uint64 `gorm:"not null" json:"upload_seq"`
	FileName      string `json:"file_name"`
	ContentType   string `gorm:"size:128" json:"content_type"`
	SizeBytes     int64  `json:"size_bytes"`
	ImageDigest   string `gorm:"index;size:64" json:"image_digest"`
	ArchiveKey    string `json:"archive_key,omitempty"`
	ItemCount     int    `json:"item_count"`
	SkippedCount  int    `json:"skipped_count"`
	TotalCalories int    `json:"total_calories"`
	Outcome       string `gorm:"size:32;not null" json:"outcome"`
	StatusCode    int    `json:"status_code,omitempty"`
	Error         string `gorm:"type:text" json:"error,omitempty"`
	DurationMS    int64  `json:"duration_ms"`
}
