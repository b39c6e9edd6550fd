package appeal

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, appeal *Appeal) error
	Update(ctx context.Context, appeal *Appeal) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appeal, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Appeal, error)
}
