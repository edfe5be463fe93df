package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/models"
)

type Filter struct {
	SessionID string
	Action    string
	Entity    string
	From      time.Time
	To        time.Time

	Page  int
	Limit int
}

func (f Filter) normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return f
}

// List returns one page of entries, newest first, and the total match count.
func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.normalize()

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.SessionID != "" {
		q = q.Where("session_id = ?", f.SessionID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
