package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/audit"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/pet-sitting-booking/internal/db"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/infra/cache"
	gallerystore "github.com/BruksfildServices01/pet-sitting-booking/internal/infra/gallery"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/infra/gcal"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/infra/instagram"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/infra/sessionstore"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/routes"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/timezone"
)

// buildDeps connects every configured backend. Unconfigured backends are
// left nil so the use cases serve their fallbacks. The returned cleanup
// releases whatever was opened.
func buildDeps(ctx context.Context, cfg *config.Config, log *zap.Logger) (routes.Deps, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	d := routes.Deps{
		Config:   cfg,
		Log:      log,
		Location: timezone.Location(cfg.BusinessTimezone),
	}

	// --------------------------------------------------
	// Audit trail
	// --------------------------------------------------
	var sink audit.Sink = audit.NewZapSink(log)
	if cfg.DBUrl != "" {
		gdb, err := dbpkg.Open(cfg.DBUrl)
		if err != nil {
			return d, cleanup, err
		}
		closers = append(closers, func() { _ = dbpkg.Close(gdb) })
		sink = audit.New(gdb)
	}
	d.Audit = audit.NewDispatcher(sink, log, 100)
	closers = append(closers, d.Audit.Close)

	// --------------------------------------------------
	// Sessions and media cache
	// --------------------------------------------------
	if cfg.RedisAddr != "" {
		client, err := cache.Open(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return d, cleanup, err
		}
		closers = append(closers, func() { _ = client.Close() })

		d.Sessions = sessionstore.NewRedis(client, cfg.SessionTTL)
		d.MediaCache = cache.NewJSONCache(client, "media:")
	} else {
		log.Warn("REDIS_ADDR not set, booking sessions are kept in memory")
		d.Sessions = sessionstore.NewMemory(cfg.SessionTTL)
	}

	// --------------------------------------------------
	// Calendar
	// --------------------------------------------------
	if cfg.GoogleCredentialsFile != "" && cfg.GoogleCalendarID != "" {
		cal, err := gcal.New(ctx, cfg.GoogleCredentialsFile, cfg.GoogleCalendarID, d.Location)
		if err != nil {
			return d, cleanup, err
		}
		d.Availability = cal
		d.Reservations = cal
	} else {
		log.Warn("google calendar not configured, serving default slots and refusing reservations")
	}

	// --------------------------------------------------
	// Media and gallery
	// --------------------------------------------------
	if cfg.InstagramAccessToken != "" {
		d.Media = instagram.New(cfg.InstagramAccessToken, cfg.InstagramAPIBase)
	}

	if cfg.GalleryBucket != "" {
		store, err := gallerystore.NewS3(gallerystore.Options{
			Bucket:          cfg.GalleryBucket,
			Prefix:          cfg.GalleryPrefix,
			Region:          cfg.GalleryRegion,
			Endpoint:        cfg.GalleryEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		})
		if err != nil {
			return d, cleanup, err
		}
		d.Gallery = store
	}

	return d, cleanup, nil
}
