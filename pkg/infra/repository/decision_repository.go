package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/modshield/modgate/pkg/domain/decision"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"gorm.io/gorm"
)

type decisionRepository struct {
	db *gorm.DB
}

func NewDecisionRepository(db *gorm.DB) decision.Repository {
	return &decisionRepository{
		db: db,
	}
}

func (r *decisionRepository) Save(ctx context.Context, d *decision.Decision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *decisionRepository) GetByID(ctx context.Context, id uuid.UUID) (*decision.Decision, error) {
	var d decision.Decision
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.NewNotFoundError("decision", id)
		}
		return nil, err
	}
	return &d, nil
}

func (r *decisionRepository) ListRecent(ctx context.Context, limit int) ([]decision.Decision, error) {
	var decisions []decision.Decision
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&decisions).Error
	return decisions, err
}
