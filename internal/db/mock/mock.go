package mock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "platecheck/internal/log"
	"platecheck/models"
)

var instances atomic.Int64

// New returns an in-memory sqlite database with the scan log schema and a
// sample scan so local runs have something to show.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:platecheck-mock-%d?mode=memory&cache=shared", instances.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.ScanRecord{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	sample := models.ScanRecord{
		WorkspaceID:   "sample",
		UploadSeq:     1,
		FileName:      "breakfast.jpg",
		ContentType:   "image/jpeg",
		SizeBytes:     248_113,
		ItemCount:     2,
		TotalCalories: 315,
		Outcome:       models.ScanOutcomeCommitted,
		DurationMS:    1840,
	}
	if err := db.WithContext(ctx).Create(&sample).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
