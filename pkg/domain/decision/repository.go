package decision

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, decision *Decision) error
	GetByID(ctx context.Context, id uuid.UUID) (*Decision, error)
	ListRecent(ctx context.Context, limit int) ([]Decision, error)
}
