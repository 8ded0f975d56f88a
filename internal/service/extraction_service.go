package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"anyfactor/internal/config"
	"anyfactor/internal/domain"
	"anyfactor/internal/extract"
	"anyfactor/internal/port"
)

const (
	errTickerNotFound = "Ticker not found"
	errNoFilings      = "No filings found"
	errFetchFailed    = "Could not fetch filing"
)

// ExtractRequest is the DTO for one extraction run.
type ExtractRequest struct {
	Tickers []string
	Feature string
	Limit   int
}

// EventSink receives the ordered event stream of a run. Progress events
// are emitted before each filing attempt; Complete is called exactly once
// with the full result list. Sink errors (a disconnected consumer) never
// interrupt the run.
type EventSink interface {
	Progress(event domain.ProgressEvent) error
	Complete(results []domain.ResultRow) error
}

// ExtractionService drives classification, filing iteration, and chunk
// search across a multi-ticker request.
type ExtractionService interface {
	Run(ctx context.Context, req ExtractRequest, sink EventSink) []domain.ResultRow
}

type extractionService struct {
	resolver port.TickerResolver
	filings  port.FilingSource
	fetcher  port.DocumentFetcher
	llm      port.Completer
	runRepo  port.RunRepository // optional; nil disables run recording
	cfg      config.ExtractConfig
	norm     func(raw string, maxChars int) string
}

// NewExtractionService creates the extraction orchestrator. runRepo may be
// nil when no database is configured. normalize converts a raw fetched
// document into bounded plain text.
func NewExtractionService(
	resolver port.TickerResolver,
	filings port.FilingSource,
	fetcher port.DocumentFetcher,
	llm port.Completer,
	runRepo port.RunRepository,
	cfg config.ExtractConfig,
	normalize func(raw string, maxChars int) string,
) ExtractionService {
	return &extractionService{
		resolver: resolver,
		filings:  filings,
		fetcher:  fetcher,
		llm:      llm,
		runRepo:  runRepo,
		cfg:      cfg,
		norm:     normalize,
	}
}

func (s *extractionService) Run(ctx context.Context, req ExtractRequest, sink EventSink) []domain.ResultRow {
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultFilingLimit
	}

	// Classification happens once per run and is reused for every filing.
	classifier := extract.NewClassifier(s.llm, s.cfg.ClassifierMaxTokens)
	feature := domain.Feature{
		Name: req.Feature,
		Kind: classifier.Classify(ctx, req.Feature),
	}
	extractor := extract.NewExtractor(s.llm, s.strategyFor(feature.Kind))
	log.Printf("extractionService.Run: feature %q classified as %s", feature.Name, feature.Kind)

	results := make([]domain.ResultRow, 0)
	for ti, ticker := range req.Tickers {
		cik, err := s.resolver.ResolveTicker(ctx, ticker)
		if err != nil {
			log.Printf("extractionService.Run: resolving %s: %v", ticker, err)
			results = append(results, domain.ResultRow{Ticker: ticker, Error: errTickerNotFound})
			continue
		}

		filings, err := s.filings.ListFilings(ctx, cik, limit)
		if err != nil {
			log.Printf("extractionService.Run: listing filings for %s (CIK %s): %v", ticker, cik, err)
		}
		if len(filings) == 0 {
			results = append(results, domain.ResultRow{Ticker: ticker, Error: errNoFilings})
			continue
		}

		for fi, filing := range filings {
			s.emitProgress(sink, domain.ProgressEvent{
				Type:          "progress",
				Ticker:        ticker,
				Current:       fi + 1,
				Total:         len(filings),
				TickerCurrent: ti + 1,
				TickerTotal:   len(req.Tickers),
			})
			results = append(results, s.searchFiling(ctx, extractor, ticker, feature, filing)...)
		}
	}

	if err := sink.Complete(results); err != nil {
		log.Printf("extractionService.Run: delivering completion event: %v", err)
	}
	s.recordRun(req, feature, limit, results)
	return results
}

// searchFiling fetches one filing and walks its chunks in priority order,
// stopping at the first chunk that yields any non-null field. A fetch
// failure produces placeholder rows and skips extraction entirely.
func (s *extractionService) searchFiling(
	ctx context.Context,
	extractor *extract.Extractor,
	ticker string,
	feature domain.Feature,
	filing domain.Filing,
) []domain.ResultRow {
	raw, err := s.fetcher.FetchDocument(ctx, filing.URL)
	if err != nil {
		log.Printf("extractionService.searchFiling: fetching %s: %v", filing.URL, err)
		return buildRows(ticker, feature, filing, domain.EmptyResult(feature.Kind), errFetchFailed)
	}

	text := s.norm(raw, s.cfg.MaxDocChars)
	chunks := extract.SplitChunks(text, s.cfg.ChunkSize)
	order := extract.PriorityOrder(len(chunks))

	result := domain.EmptyResult(feature.Kind)
	for _, idx := range order {
		result = extractor.Extract(ctx, chunks[idx], feature, filing.FormType)
		if result.Found() {
			break
		}
	}
	// An exhausted search carries null values with no error; that is a
	// different outcome from a failed fetch and must stay distinguishable.
	return buildRows(ticker, feature, filing, result, "")
}

func (s *extractionService) strategyFor(kind domain.FeatureKind) extract.Strategy {
	if kind == domain.FeatureKindQualitative {
		return extract.QualitativeStrategy{
			MaxOutputTokens:  s.cfg.QualitativeMaxTokens,
			EvidenceMaxChars: s.cfg.EvidenceMaxChars,
		}
	}
	return extract.NumericStrategy{MaxOutputTokens: s.cfg.NumericMaxTokens}
}

func (s *extractionService) emitProgress(sink EventSink, event domain.ProgressEvent) {
	if err := sink.Progress(event); err != nil {
		log.Printf("extractionService.emitProgress: %v", err)
	}
}

// recordRun persists a write-only audit record of the completed run.
// Failures are logged and never surfaced to the caller.
func (s *extractionService) recordRun(req ExtractRequest, feature domain.Feature, limit int, results []domain.ResultRow) {
	if s.runRepo == nil {
		return
	}
	payload, err := json.Marshal(results)
	if err != nil {
		log.Printf("extractionService.recordRun: marshaling results: %v", err)
		return
	}
	run := &domain.ExtractionRun{
		ID:          uuid.New(),
		Tickers:     strings.Join(req.Tickers, ","),
		Feature:     feature.Name,
		FeatureKind: feature.Kind,
		FilingLimit: limit,
		ResultCount: len(results),
		Results:     payload,
		CreatedAt:   time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.runRepo.Create(ctx, run); err != nil {
		log.Printf("extractionService.recordRun: saving run %s: %v", run.ID, err)
	}
}

// buildRows translates a terminal ExtractionResult into the row set the
// filing's form type requires: two period rows for a 10-K, one for a 10-Q.
// The row count holds for found, not-found, and fetch-failed filings.
func buildRows(ticker string, feature domain.Feature, filing domain.Filing, result domain.ExtractionResult, errMsg string) []domain.ResultRow {
	base := domain.ResultRow{
		Ticker:     ticker,
		Feature:    feature.Name,
		FilingURL:  filing.URL,
		FilingDate: filing.FilingDate,
		FormType:   filing.FormType,
		Error:      errMsg,
	}

	if result.Score != nil {
		base.ValueType = domain.ValueTypeScore
		if result.Score.Score != nil {
			v := float64(*result.Score.Score)
			base.Value = &v
		}
		base.Evidence = result.Score.Evidence
		if filing.FormType == domain.FormType10K {
			annual := base
			annual.PeriodType = domain.PeriodTypeAnnual
			quarterly := base
			quarterly.PeriodType = domain.PeriodTypeQuarterly
			return []domain.ResultRow{annual, quarterly}
		}
		base.PeriodType = domain.PeriodTypeQuarterly
		return []domain.ResultRow{base}
	}

	base.ValueType = domain.ValueTypeNumeric
	numeric := result.Numeric
	if numeric == nil {
		numeric = &domain.NumericResult{}
	}
	quarterly := base
	quarterly.PeriodType = domain.PeriodTypeQuarterly
	quarterly.Value = numeric.Quarterly
	if filing.FormType == domain.FormType10K {
		annual := base
		annual.PeriodType = domain.PeriodTypeAnnual
		annual.Value = numeric.Annual
		return []domain.ResultRow{annual, quarterly}
	}
	return []domain.ResultRow{quarterly}
}
