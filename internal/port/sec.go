package port

import (
	"context"

	"anyfactor/internal/domain"
)

// TickerResolver maps a ticker symbol to its zero-padded 10-digit CIK.
// Returns domain.ErrTickerNotFound when the symbol is unknown.
type TickerResolver interface {
	ResolveTicker(ctx context.Context, ticker string) (string, error)
}

// FilingSource lists a company's recent 10-K/10-Q filings, most recent
// first, capped at limit.
type FilingSource interface {
	ListFilings(ctx context.Context, cik string, limit int) ([]domain.Filing, error)
}

// DocumentFetcher retrieves the raw document behind a filing URL.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) (string, error)
}
