package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"anyfactor/internal/domain"
)

// MockTickerResolver is a mock implementation of port.TickerResolver.
type MockTickerResolver struct {
	mock.Mock
}

func (m *MockTickerResolver) ResolveTicker(ctx context.Context, ticker string) (string, error) {
	args := m.Called(ctx, ticker)
	return args.String(0), args.Error(1)
}

// MockFilingSource is a mock implementation of port.FilingSource.
type MockFilingSource struct {
	mock.Mock
}

func (m *MockFilingSource) ListFilings(ctx context.Context, cik string, limit int) ([]domain.Filing, error) {
	args := m.Called(ctx, cik, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Filing), args.Error(1)
}

// MockDocumentFetcher is a mock implementation of port.DocumentFetcher.
type MockDocumentFetcher struct {
	mock.Mock
}

func (m *MockDocumentFetcher) FetchDocument(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}
