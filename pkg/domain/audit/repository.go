package audit

import "context"

type Filter struct {
	Action     string
	TargetType string
	Limit      int
}

type Repository interface {
	Save(ctx context.Context, log *Log) error
	List(ctx context.Context, filter Filter) ([]Log, error)
}
