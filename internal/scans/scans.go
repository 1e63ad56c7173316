package scans

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"

	"platecheck/models"
)

const defaultRecentLimit = 10

// Log persists the audit trail of photo uploads.
type Log struct {
	db *gorm.DB
}

// NewLog wraps db. A nil db yields a Log that discards records.
func NewLog(db *gorm.DB) *Log {
	return &Log{db: db}
}

// Enabled reports whether records are persisted.
func (l *Log) Enabled() bool {
	return l != nil && l.db != nil
}

// Record stores one upload attempt.
func (l *Log) Record(ctx context.Context, record *models.ScanRecord) error {
	if !l.Enabled() {
		return nil
	}
	if record == nil {
		return errors.New("scans: nil record")
	}
	if strings.TrimSpace(record.Outcome) == "" {
		record.Outcome = models.ScanOutcomeFailed
	}
	return l.db.WithContext(ctx).Create(record).Error
}

// Recent returns the latest records for a workspace, newest first.
func (l *Log) Recent(ctx context.Context, workspaceID string, limit int) ([]models.ScanRecord, error) {
	if !l.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	var records []models.ScanRecord
	err := l.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Digest fingerprints an uploaded image with BLAKE2b-256.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Ping checks that the backing database answers.
func (l *Log) Ping(ctx context.Context) error {
	if !l.Enabled() {
		return nil
	}
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
