package analyzer

import (
	"context"
	"fmt"

	"github.com/modshield/modgate/pkg/domain/content"
	"github.com/modshield/modgate/pkg/domain/signal"
)

// Context carries free-form analysis hints. Appeal re-evaluation folds the
// appellant's reason in as structured context rather than prompt text.
type Context struct {
	Hint         string `json:"hint,omitempty"`
	AppealReason string `json:"appeal_reason,omitempty"`
}

func (c Context) String() string {
	switch {
	case c.Hint != "" && c.AppealReason != "":
		return fmt.Sprintf("%s; appeal context: %s", c.Hint, c.AppealReason)
	case c.AppealReason != "":
		return "appeal context: " + c.AppealReason
	default:
		return c.Hint
	}
}

type Request struct {
	Item    *content.Item
	Context Context
}

// Analyzer normalizes one external inference capability into a RiskSignal.
// Provider failures never surface as errors: they degrade into a low
// confidence signal per the failure-containment contract. An error return
// means the request itself was invalid.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, req *Request) (*signal.RiskSignal, error)
}

// Registry is the dependency-injected set of analyzers selected per content
// type at construction time.
type Registry struct {
	analyzers map[content.Type]Analyzer
}

func NewRegistry(text, image, audio, video Analyzer) *Registry {
	return &Registry{
		analyzers: map[content.Type]Analyzer{
			content.TypeText:      text,
			content.TypeImage:     image,
			content.TypeAudio:     audio,
			content.TypeVideo:     video,
			content.TypeLiveFrame: image,
		},
	}
}

func (r *Registry) ForType(t content.Type) (Analyzer, error) {
	a, ok := r.analyzers[t]
	if !ok || a == nil {
		return nil, fmt.Errorf("no analyzer registered for content type %q", t)
	}
	return a, nil
}
