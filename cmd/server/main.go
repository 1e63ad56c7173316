package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hako/durafmt"
	"gorm.io/gorm"

	"platecheck/internal/archive"
	"platecheck/internal/config"
	"platecheck/internal/db"
	"platecheck/internal/db/mock"
	"platecheck/internal/handlers"
	applog "platecheck/internal/log"
	"platecheck/internal/recognition"
	"platecheck/internal/server"
	"platecheck/internal/workspace"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newRecognizerFunc   = newRecognizer
	newArchiverFunc     = newArchiver
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	code := run(context.Background())
	if err := applog.Sync(); err != nil {
		os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
	}
	os.Exit(code)
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	applog.Debug(ctx, "configuration loaded",
		"addr", cfg.Server.Addr,
		"mockDatabase", cfg.Database.UseMock,
		"recognition", cfg.Recognition.Enabled(),
		"archive", cfg.Archive.Enabled(),
	)

	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	recognizer, err := newRecognizerFunc(cfg.Recognition)
	if err != nil {
		applog.Error(ctx, "failed to configure recognition client", "error", err)
		return 1
	}
	if recognizer == nil {
		applog.Warn(ctx, "recognition service not configured, uploads are disabled")
	}

	archiver, err := newArchiverFunc(ctx, cfg.Archive)
	if err != nil {
		applog.Error(ctx, "failed to configure photo archive", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Database:       database,
		Recognizer:     recognizer,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Workspaces: workspace.NewRegistry(workspace.Options{
			IdleTimeout:      cfg.Session.Lifetime,
			UploadsPerMinute: cfg.Upload.RatePerMinute,
			UploadBurst:      cfg.Upload.Burst,
		}),
		Archive: archiver,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	applog.Info(ctx, "workspace settings",
		"sessionLifetime", durafmt.Parse(cfg.Session.Lifetime).LimitFirstN(2).String(),
		"uploadsPerMinute", cfg.Upload.RatePerMinute,
		"uploadBurst", cfg.Upload.Burst,
	)

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "context cancelled, shutting down http server")
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server exited with error", "error", err)
		return 1
	}
	applog.Info(ctx, "http server stopped")
	return 0
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.UseMock {
		applog.Info(ctx, "using in-memory scan log database")
		return newMockDatabaseFunc(ctx)
	}
	return configureDatabase(cfg)
}

func newRecognizer(cfg config.RecognitionConfig) (handlers.Recognizer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client, err := recognition.NewClient(recognition.Config{
		URL:       cfg.URL,
		APIKey:    cfg.APIKey,
		FieldName: cfg.FieldName,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newArchiver(ctx context.Context, cfg config.ArchiveConfig) (archive.Archiver, error) {
	if !cfg.Enabled() {
		return archive.Disabled{}, nil
	}
	archiver, err := archive.NewS3Archiver(ctx, cfg.Bucket, cfg.Region, cfg.Prefix)
	if err != nil {
		return nil, err
	}
	return archiver, nil
}
