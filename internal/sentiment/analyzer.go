// internal/sentiment/analyzer.go
package sentiment

import (
	"context"

	"mood-wallet/internal/domain"
)

// Label values produced by the built-in analyzer.
const (
	LabelNeutral = "neutral"
)

// Analyzer tags diary content with a sentiment. Implementations may call out
// to a model; the diary flow treats the result as opaque.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (domain.Sentiment, error)
}

// Neutral labels every entry neutral. It is the default when no model is configured.
type Neutral struct{}

// NewNeutral returns the default analyzer.
func NewNeutral() Analyzer {
	return Neutral{}
}

func (Neutral) Analyze(_ context.Context, _ string) (domain.Sentiment, error) {
	return domain.Sentiment{
		Label:   LabelNeutral,
		Message: "Thanks for writing today.",
	}, nil
}
