package domain

import (
	"errors"
)

var (
	ErrInvalidContentType  = errors.New("unsupported content type")
	ErrMissingPayloadRef   = errors.New("missing payload reference")
	ErrAppealAlreadyClosed = errors.New("appeal already reached a terminal state")
	ErrInvalidAppealState  = errors.New("invalid appeal state transition")
)
