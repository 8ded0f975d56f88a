package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"anyfactor/internal/domain"
	"anyfactor/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) Create(ctx context.Context, run *domain.ExtractionRun) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extraction_runs (id, tickers, feature, feature_kind, filing_limit, result_count, results, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.Tickers, run.Feature, run.FeatureKind, run.FilingLimit, run.ResultCount, run.Results, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("runRepo.Create: %w", err)
	}
	return nil
}
