package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/models"
)

type Sink interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

// Logger writes audit entries to the database.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, entry models.AuditLog) error {
	return l.db.WithContext(ctx).Create(&entry).Error
}

// ZapSink is used when no database is configured.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log}
}

func (s *ZapSink) Log(_ context.Context, entry models.AuditLog) error {
	s.log.Info("audit",
		zap.String("session_id", entry.SessionID),
		zap.String("action", entry.Action),
		zap.String("entity", entry.Entity),
		zap.String("entity_id", entry.EntityID),
		zap.String("metadata", entry.Metadata),
	)
	return nil
}

func toEntry(ev Event) models.AuditLog {
	var meta string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = string(b)
		}
	}

	return models.AuditLog{
		SessionID: ev.SessionID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  meta,
	}
}
