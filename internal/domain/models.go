package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Feature is a user-requested feature, classified once per extraction run
// and read-only thereafter.
type Feature struct {
	Name string
	Kind FeatureKind
}

// Filing holds the metadata for a single SEC filing, sourced from EDGAR.
type Filing struct {
	URL        string
	FormType   FormType
	FilingDate string
}

// NumericResult holds the values extracted for a numeric feature. Either
// field may be nil when the value was not disclosed in the searched chunk.
type NumericResult struct {
	Annual    *float64
	Quarterly *float64
}

// Found reports whether at least one period value was extracted.
func (n *NumericResult) Found() bool {
	return n.Annual != nil || n.Quarterly != nil
}

// ScoreResult holds a qualitative 1-10 score with short supporting evidence.
type ScoreResult struct {
	Score    *int
	Evidence string
}

// Found reports whether a score was extracted.
func (s *ScoreResult) Found() bool {
	return s.Score != nil
}

// ExtractionResult is a tagged variant: exactly one of Numeric or Score is
// non-nil, matching the feature kind of the run that produced it.
type ExtractionResult struct {
	Numeric *NumericResult
	Score   *ScoreResult
}

// Found reports whether the result carries at least one non-null field,
// which is the chunk-search early-stop condition.
func (r ExtractionResult) Found() bool {
	if r.Numeric != nil {
		return r.Numeric.Found()
	}
	if r.Score != nil {
		return r.Score.Found()
	}
	return false
}

// EmptyResult returns the all-null result for the given feature kind.
func EmptyResult(kind FeatureKind) ExtractionResult {
	if kind == FeatureKindQualitative {
		return ExtractionResult{Score: &ScoreResult{}}
	}
	return ExtractionResult{Numeric: &NumericResult{}}
}

// ResultRow is the externally visible unit of output. Ticker-level error
// rows carry only Ticker and Error; filing-level rows carry the full set.
type ResultRow struct {
	Ticker     string     `json:"ticker"`
	Feature    string     `json:"feature,omitempty"`
	Value      *float64   `json:"value"`
	ValueType  ValueType  `json:"value_type,omitempty"`
	PeriodType PeriodType `json:"period_type,omitempty"`
	Evidence   string     `json:"evidence,omitempty"`
	FilingURL  string     `json:"filing_url,omitempty"`
	FilingDate string     `json:"filing_date,omitempty"`
	FormType   FormType   `json:"form_type,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// ProgressEvent is emitted before each filing attempt. Current/Total count
// filings within the ticker; TickerCurrent/TickerTotal count tickers within
// the request. All indices are 1-based.
type ProgressEvent struct {
	Type          string `json:"type"`
	Ticker        string `json:"ticker"`
	Current       int    `json:"current"`
	Total         int    `json:"total"`
	TickerCurrent int    `json:"ticker_current"`
	TickerTotal   int    `json:"ticker_total"`
}

// CompleteEvent terminates the stream, carrying the full ordered result list.
type CompleteEvent struct {
	Type    string      `json:"type"`
	Results []ResultRow `json:"results"`
}

// ExtractionRun is the write-only audit record persisted after a completed
// run. It is never read back to serve requests.
type ExtractionRun struct {
	ID          uuid.UUID       `db:"id"`
	Tickers     string          `db:"tickers"`
	Feature     string          `db:"feature"`
	FeatureKind FeatureKind     `db:"feature_kind"`
	FilingLimit int             `db:"filing_limit"`
	ResultCount int             `db:"result_count"`
	Results     json.RawMessage `db:"results"`
	CreatedAt   time.Time       `db:"created_at"`
}
