package common

import "time"

const (
	DecisionCacheTTL = 5 * time.Minute
	BaselineTTL      = 24 * time.Hour

	DefaultDecisionWindow = 100
)
