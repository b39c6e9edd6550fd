package repository

import (
	"context"

	"github.com/modshield/modgate/pkg/domain/audit"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &auditRepository{
		db: db,
	}
}

func (r *auditRepository) Save(ctx context.Context, log *audit.Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditRepository) List(ctx context.Context, filter audit.Filter) ([]audit.Log, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var logs []audit.Log
	err := query.Limit(limit).Find(&logs).Error
	return logs, err
}
