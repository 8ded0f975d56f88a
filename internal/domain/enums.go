package domain

// FormType represents the SEC filing categories this service understands.
type FormType string

const (
	FormType10K FormType = "10-K"
	FormType10Q FormType = "10-Q"
)

// AllowedFormTypes lists the filing forms considered when listing filings.
var AllowedFormTypes = map[FormType]bool{
	FormType10K: true,
	FormType10Q: true,
}

// FeatureKind classifies a requested feature as numeric or qualitative.
type FeatureKind string

const (
	FeatureKindNumeric     FeatureKind = "numeric"
	FeatureKindQualitative FeatureKind = "qualitative"
)

// ValueType tags a result row with the shape of its value.
type ValueType string

const (
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeScore   ValueType = "score"
)

// PeriodType identifies the reporting period a numeric value covers.
type PeriodType string

const (
	PeriodTypeAnnual    PeriodType = "annual"
	PeriodTypeQuarterly PeriodType = "quarterly"
)
