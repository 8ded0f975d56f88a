package extract

import (
	"context"
	"log"
	"strings"

	"anyfactor/internal/domain"
	"anyfactor/internal/port"
)

// Classifier determines whether a requested feature is numeric or
// qualitative with a single short model call.
type Classifier struct {
	llm       port.Completer
	maxTokens int
}

// NewClassifier creates a feature classifier.
func NewClassifier(llm port.Completer, maxTokens int) *Classifier {
	return &Classifier{llm: llm, maxTokens: maxTokens}
}

// Classify returns the feature kind for the given name. A call error or
// an answer naming neither category defaults to numeric: numeric
// extraction degrades to nulls, while scoring a truly numeric feature
// would silently produce a misleading result.
func (c *Classifier) Classify(ctx context.Context, featureName string) domain.FeatureKind {
	resp, err := c.llm.Complete(ctx, port.CompletionRequest{
		System:      classifierSystemPrompt,
		Prompt:      BuildClassifierPrompt(featureName),
		Temperature: extractionTemperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		log.Printf("extract.Classifier: classification call failed for %q, defaulting to numeric: %v", featureName, err)
		return domain.FeatureKindNumeric
	}

	answer := strings.ToLower(resp)
	switch {
	case strings.Contains(answer, "numeric"):
		return domain.FeatureKindNumeric
	case strings.Contains(answer, "qualitative"):
		return domain.FeatureKindQualitative
	default:
		return domain.FeatureKindNumeric
	}
}
