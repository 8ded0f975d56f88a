package port

import (
	"context"

	"anyfactor/internal/domain"
)

// RunRepository persists extraction-run audit records.
type RunRepository interface {
	Create(ctx context.Context, run *domain.ExtractionRun) error
}
