package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainErrors "github.com/modshield/modgate/pkg/domain/errors"
	"github.com/modshield/modgate/pkg/domain/queue"
	"gorm.io/gorm"
)

type queueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) queue.Repository {
	return &queueRepository{
		db: db,
	}
}

func (r *queueRepository) Save(ctx context.Context, item *queue.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *queueRepository) Update(ctx context.Context, item *queue.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *queueRepository) GetByID(ctx context.Context, id uuid.UUID) (*queue.Item, error) {
	var item queue.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.NewNotFoundError("moderation queue item", id)
		}
		return nil, err
	}
	return &item, nil
}

func (r *queueRepository) ListByStatus(ctx context.Context, status queue.Status, limit int) ([]queue.Item, error) {
	var items []queue.Item
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("priority DESC, created_at ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
