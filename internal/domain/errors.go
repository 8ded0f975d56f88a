package domain

import "errors"

var (
	ErrTickerNotFound  = errors.New("ticker not found")
	ErrNoFilingsFound  = errors.New("no filings found")
	ErrFetchFailed     = errors.New("filing document fetch failed")
	ErrMissingAPIKey   = errors.New("llm api key is not configured")
	ErrUnknownProvider = errors.New("unknown llm provider")
)
