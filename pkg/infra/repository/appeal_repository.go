package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/appeal"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"gorm.io/gorm"
)

type appealRepository struct {
	db *gorm.DB
}

func NewAppealRepository(db *gorm.DB) appeal.Repository {
	return &appealRepository{
		db: db,
	}
}

func (r *appealRepository) Save(ctx context.Context, a *appeal.Appeal) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *appealRepository) Update(ctx context.Context, a *appeal.Appeal) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *appealRepository) GetByID(ctx context.Context, id uuid.UUID) (*appeal.Appeal, error) {
	var a appeal.Appeal
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.NewNotFoundError("appeal", id)
		}
		return nil, err
	}
	return &a, nil
}

func (r *appealRepository) ListByStatus(ctx context.Context, status appeal.Status, limit int) ([]appeal.Appeal, error) {
	var appeals []appeal.Appeal
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&appeals).Error
	return appeals, err
}
