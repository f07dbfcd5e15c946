package verdict

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/interfaces"
	"github.com/ternarybob/finquant/internal/models"
	"github.com/ternarybob/finquant/internal/services/artifacts"
	"github.com/ternarybob/finquant/internal/services/market"
	"github.com/ternarybob/finquant/internal/services/screener"
)

// DefaultSnapshotBudget is the fundamental_snapshot length in characters
const DefaultSnapshotBudget = 12000

// Builder runs the document pipeline and the market fetch for one company
// and merges them into a VerdictPayload. A Builder is safe for concurrent
// use; every Build opens its own DocumentSession.
type Builder struct {
	sessions  interfaces.SessionFactory
	assembler *screener.Assembler
	writer    interfaces.ArtifactWriter
	market    interfaces.MarketFetcher
	archive   interfaces.ArchiveStorage
	validate  *validator.Validate
	logger    arbor.ILogger
	budget    int
	now       func() time.Time
	newID     func() string
}

// Option configures a Builder
type Option func(*Builder)

// WithArchive records every successful build in the archive
func WithArchive(archive interfaces.ArchiveStorage) Option {
	return func(b *Builder) {
		b.archive = archive
	}
}

// WithSnapshotBudget overrides the fundamental_snapshot budget
func WithSnapshotBudget(budget int) Option {
	return func(b *Builder) {
		if budget > 0 {
			b.budget = budget
		}
	}
}

// WithClock overrides the generated_at clock
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder creates a verdict payload builder
func NewBuilder(
	sessions interfaces.SessionFactory,
	assembler *screener.Assembler,
	writer interfaces.ArtifactWriter,
	fetcher interfaces.MarketFetcher,
	logger arbor.ILogger,
	opts ...Option,
) *Builder {
	b := &Builder{
		sessions:  sessions,
		assembler: assembler,
		writer:    writer,
		market:    fetcher,
		validate:  validator.New(),
		logger:    logger,
		budget:    DefaultSnapshotBudget,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build captures the company page, persists its snapshot, fetches the price
// series and returns the combined payload. Only a document failure aborts
// the build; persistence and market failures are folded into the payload.
func (b *Builder) Build(ctx context.Context, req models.VerdictRequest) (*models.VerdictPayload, error) {
	if err := b.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid verdict request: %w", err)
	}

	runID := b.newID()
	logger := b.logger.WithCorrelationId(runID)
	started := time.Now()

	logger.Info().
		Str("screener_name", req.ScreenerName).
		Str("ticker", req.Ticker).
		Msg("Verdict build started")

	capture, err := b.capture(ctx, logger, req.ScreenerName)
	if err != nil {
		logger.Error().Err(err).Str("screener_name", req.ScreenerName).Msg("Company page unavailable")
		return nil, err
	}

	saved, err := b.writer.WriteSnapshot(capture.BaseName, capture.Snapshot)
	if err != nil {
		logger.Warn().Err(err).Int("saved", len(saved)).Msg("Some snapshot artifacts were not written")
	}
	if saved == nil {
		saved = []string{}
	}

	report, technicalPath := b.technical(ctx, logger, req.Ticker, capture.BaseName)

	fundamental, err := artifacts.MarshalSnapshot(capture.Snapshot)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to serialise snapshot")
		fundamental = []byte("{}")
	}

	payload := &models.VerdictPayload{
		Metadata:            capture.Snapshot.Metadata,
		ScreenerName:        req.ScreenerName,
		Ticker:              req.Ticker,
		TechnicalReport:     report,
		FundamentalSnapshot: truncate(string(fundamental), b.budget),
		SavedFiles:          saved,
		GeneratedAt:         b.now().Format(time.RFC3339),
		BaseName:            capture.BaseName,
		RunID:               runID,
		TechnicalPath:       technicalPath,
	}

	b.record(ctx, logger, req, payload)

	logger.Info().
		Str("base_name", capture.BaseName).
		Int("saved_files", len(saved)).
		Dur("duration", time.Since(started)).
		Msg("Verdict build completed")

	return payload, nil
}

// capture drives one DocumentSession to DocumentReady and assembles its
// snapshot. The session is closed on every path.
func (b *Builder) capture(ctx context.Context, logger arbor.ILogger, query string) (*screener.Capture, error) {
	session := b.sessions.NewSession()
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("Failed to close document session")
		}
	}()

	if err := session.Start(ctx); err != nil {
		return nil, err
	}
	if err := session.Search(ctx, query); err != nil {
		return nil, err
	}
	return screener.ExtractAll(session, b.assembler)
}

// technical fetches the series and renders the report. A failed fetch
// yields the placeholder text and no artifact.
func (b *Builder) technical(ctx context.Context, logger arbor.ILogger, ticker, baseName string) (string, string) {
	series, err := b.market.Fetch(ctx, ticker)
	if err != nil {
		logger.Warn().Err(err).Str("ticker", ticker).Msg("Market data unavailable")
		return market.Unavailable(ticker, err), ""
	}

	report := market.RenderReport(series)
	path, err := b.writer.WriteTechnical(baseName, report)
	if err != nil {
		logger.Warn().Err(err).Str("base_name", baseName).Msg("Failed to write technical report")
		return report, ""
	}
	return report, path
}

func (b *Builder) record(ctx context.Context, logger arbor.ILogger, req models.VerdictRequest, payload *models.VerdictPayload) {
	if b.archive == nil {
		return
	}

	generatedAt, err := time.Parse(time.RFC3339, payload.GeneratedAt)
	if err != nil {
		generatedAt = b.now()
	}

	entry := &models.ArchiveEntry{
		BaseName:        payload.BaseName,
		Query:           req.ScreenerName,
		Company:         payload.Metadata.Company,
		Ticker:          req.Ticker,
		URL:             payload.Metadata.URL,
		SavedFiles:      payload.SavedFiles,
		TechnicalReport: payload.TechnicalReport,
		GeneratedAt:     generatedAt,
		RunID:           payload.RunID,
	}
	if err := b.archive.Upsert(ctx, entry); err != nil {
		logger.Warn().Err(err).Str("base_name", payload.BaseName).Msg("Failed to archive verdict")
	}
}

// IsDocumentFailure reports whether err aborted a build before any payload
// was produced.
func IsDocumentFailure(err error) bool {
	return errors.Is(err, models.ErrDocumentUnavailable) || errors.Is(err, models.ErrSessionState)
}

// truncate cuts s to at most limit characters
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
