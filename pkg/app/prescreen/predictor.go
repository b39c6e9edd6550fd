package prescreen

import (
	"time"

	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/prediction"
)

//go:generate mockery --name=Predictor --dir=. --output=./mocks --filename=predictor_mock.go --case=underscore --with-expecter
type Predictor interface {
	Predict(item *content.Item) *prediction.RiskPrediction
}

// predictor scores a content item from metadata alone, before any analyzer
// runs. The output drives scheduling only and never feeds into a Decision.
type predictor struct {
	cfg config.PreScreenConfig
}

func NewPredictor(cfg config.PreScreenConfig) Predictor {
	return &predictor{cfg: cfg}
}

func (p *predictor) Predict(item *content.Item) *prediction.RiskPrediction {
	risk := p.cfg.BaseRisk
	var factors []string

	if item.PriorViolations > 0 {
		risk += p.cfg.ViolationWeight * float64(item.PriorViolations)
		factors = append(factors, "prior_violations")
	}
	newAccountCutoff := time.Duration(p.cfg.NewAccountDays) * 24 * time.Hour
	if !item.AccountCreatedAt.IsZero() && item.AccountAge(time.Now()) < newAccountCutoff {
		risk += p.cfg.NewAccountRisk
		factors = append(factors, "new_account")
	}
	if item.Type == content.TypeVideo && item.PayloadSizeBytes > p.cfg.LargeVideoBytes {
		risk += p.cfg.LargeVideoRisk
		factors = append(factors, "large_video")
	}
	hour := item.UploadedAt.Hour()
	if hour < p.cfg.NormalHoursStart || hour >= p.cfg.NormalHoursEnd {
		risk += p.cfg.OffHoursRisk
		factors = append(factors, "off_hours_upload")
	}

	if risk > 1 {
		risk = 1
	}
	if risk < 0 {
		risk = 0
	}

	return &prediction.RiskPrediction{
		RiskScore:   risk,
		RiskFactors: factors,
		Priority:    priorityFor(risk),
	}
}

func priorityFor(risk float64) prediction.Priority {
	switch {
	case risk > 0.8:
		return prediction.PriorityUrgent
	case risk > 0.6:
		return prediction.PriorityHigh
	case risk > 0.3:
		return prediction.PriorityMedium
	default:
		return prediction.PriorityLow
	}
}
