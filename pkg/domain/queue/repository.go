package queue

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Item, error)
}
