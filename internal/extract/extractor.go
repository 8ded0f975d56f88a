package extract

import (
	"context"
	"log"

	"anyfactor/internal/domain"
	"anyfactor/internal/port"
)

// Strategy builds the prompt and parses the response for one feature kind.
// The orchestrator selects a strategy once per run from the classifier's
// output.
type Strategy interface {
	Kind() domain.FeatureKind
	BuildPrompt(chunk, featureName string, form domain.FormType) string
	System() string
	MaxTokens() int
	Parse(raw string, form domain.FormType) domain.ExtractionResult
}

// NumericStrategy extracts annual/quarterly values for numeric features.
type NumericStrategy struct {
	MaxOutputTokens int
}

func (s NumericStrategy) Kind() domain.FeatureKind { return domain.FeatureKindNumeric }

func (s NumericStrategy) System() string { return numericSystemPrompt }

func (s NumericStrategy) MaxTokens() int { return s.MaxOutputTokens }

func (s NumericStrategy) BuildPrompt(chunk, featureName string, form domain.FormType) string {
	if form == domain.FormType10K {
		return BuildNumeric10KPrompt(chunk, featureName)
	}
	return BuildNumeric10QPrompt(chunk, featureName)
}

func (s NumericStrategy) Parse(raw string, form domain.FormType) domain.ExtractionResult {
	return domain.ExtractionResult{Numeric: ParseNumericResponse(raw, form)}
}

// QualitativeStrategy scores qualitative features against a fixed rubric.
type QualitativeStrategy struct {
	MaxOutputTokens  int
	EvidenceMaxChars int
}

func (s QualitativeStrategy) Kind() domain.FeatureKind { return domain.FeatureKindQualitative }

func (s QualitativeStrategy) System() string { return qualitativeSystemPrompt }

func (s QualitativeStrategy) MaxTokens() int { return s.MaxOutputTokens }

func (s QualitativeStrategy) BuildPrompt(chunk, featureName string, form domain.FormType) string {
	return BuildQualitativePrompt(chunk, featureName)
}

func (s QualitativeStrategy) Parse(raw string, form domain.FormType) domain.ExtractionResult {
	return domain.ExtractionResult{Score: ParseScoreResponse(raw, s.EvidenceMaxChars)}
}

// Extractor runs one model call per chunk and parses the result via the
// run's strategy.
type Extractor struct {
	llm      port.Completer
	strategy Strategy
}

// NewExtractor creates an extractor bound to one strategy.
func NewExtractor(llm port.Completer, strategy Strategy) *Extractor {
	return &Extractor{llm: llm, strategy: strategy}
}

// Strategy returns the strategy this extractor was built with.
func (e *Extractor) Strategy() Strategy {
	return e.strategy
}

// Extract prompts the model with one chunk and returns the typed result.
// A call failure yields the all-null result for the run's feature kind;
// it never propagates to the caller.
func (e *Extractor) Extract(ctx context.Context, chunk string, feature domain.Feature, form domain.FormType) domain.ExtractionResult {
	raw, err := e.llm.Complete(ctx, port.CompletionRequest{
		System:      e.strategy.System(),
		Prompt:      e.strategy.BuildPrompt(chunk, feature.Name, form),
		Temperature: extractionTemperature,
		MaxTokens:   e.strategy.MaxTokens(),
	})
	if err != nil {
		log.Printf("extract.Extractor: model call failed for feature %q (%s): %v", feature.Name, form, err)
		return domain.EmptyResult(e.strategy.Kind())
	}
	return e.strategy.Parse(raw, form)
}
