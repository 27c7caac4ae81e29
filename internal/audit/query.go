package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

type Filter struct {
	OrganizationID uint
	Action         string
	Entity         string
	From           *time.Time
	To             *time.Time // exclusivo
	Page           int
	Limit          int
}

// Normalize aplica os limites de paginação (padrão 50, máximo 200)
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
}

// List devolve a página pedida (mais recentes primeiro) e o total do filtro.
// Sempre restrito à organização.
func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f.Normalize()

	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("organization_id = ?", f.OrganizationID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
