package screener

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/common"
	"github.com/ternarybob/finquant/internal/interfaces"
	"github.com/ternarybob/finquant/internal/models"
)

const (
	scrapedAtLayout = "2006-01-02 15:04:05"
	baseDateLayout  = "02-01-2006"
	fallbackBase    = "STOCK"
)

var (
	unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Capture is an assembled snapshot plus the base name for its artifacts.
type Capture struct {
	Snapshot *models.Snapshot
	BaseName string
}

// Assembler runs every extractor against a rendered page and builds the
// snapshot. Extractor failures and panics are isolated per section.
type Assembler struct {
	logger arbor.ILogger
	now    func() time.Time
}

// AssemblerOption configures an Assembler
type AssemblerOption func(*Assembler)

// WithClock overrides the capture clock
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		a.now = now
	}
}

// NewAssembler creates a snapshot assembler
func NewAssembler(logger arbor.ILogger, opts ...AssemblerOption) *Assembler {
	a := &Assembler{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble parses the page and extracts all sections.
func (a *Assembler) Assemble(page *models.RenderedPage) (*Capture, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("%w: parse company page: %v", models.ErrDocumentUnavailable, err)
	}

	capturedAt := page.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = a.now()
	}

	company := ExtractCompanyName(doc)
	if company == "" {
		company = page.Query
	}

	snapshot := models.NewSnapshot(models.SnapshotMetadata{
		Company:    company,
		UserQuery:  page.Query,
		ScrapedAt:  capturedAt.Format(scrapedAtLayout),
		URL:        page.URL,
		CapturedAt: capturedAt,
	})

	a.extract(models.SectionQuarters, func() {
		snapshot.Quarters = ExtractSection(doc, regionQuarters).Collapse(a.logger)
	})
	a.extract(models.SectionProfitLoss, func() {
		snapshot.ProfitLoss = ExtractProfitLoss(doc).Collapse(a.logger)
	})
	a.extract(models.SectionBalanceSheet, func() {
		snapshot.BalanceSheet = ExtractSection(doc, regionBalanceSheet).Collapse(a.logger)
	})
	a.extract(models.SectionShareholding, func() {
		snapshot.Shareholding = ExtractShareholding(doc).Collapse(a.logger)
	})
	a.extract(models.SectionAnalysis, func() {
		snapshot.Analysis = ExtractQualitative(doc).Collapse(a.logger)
	})

	baseName := BaseName(page.Query, company, capturedAt)
	a.logger.Info().
		Str("company", company).
		Str("base_name", baseName).
		Int("quarters", snapshot.Quarters.Len()).
		Int("profit_loss", snapshot.ProfitLoss.AnnualData.Len()).
		Int("balance_sheet", snapshot.BalanceSheet.Len()).
		Int("pros", len(snapshot.Analysis.Pros)).
		Int("cons", len(snapshot.Analysis.Cons)).
		Msg("Snapshot assembled")

	return &Capture{Snapshot: snapshot, BaseName: baseName}, nil
}

// extract runs one section's extraction; a panic leaves that section at
// its empty default.
func (a *Assembler) extract(section string, fn func()) {
	_ = common.SafeCall(a.logger, "extract "+section, func() error {
		fn()
		return nil
	})
}

// ExtractAll assembles the snapshot of a session that reached DocumentReady.
func ExtractAll(session interfaces.DocumentSession, assembler *Assembler) (*Capture, error) {
	if state := session.State(); state != models.SessionDocumentReady {
		return nil, fmt.Errorf("%w: extract called in state %s", models.ErrSessionState, state)
	}

	page, err := session.Page()
	if err != nil {
		return nil, err
	}
	return assembler.Assemble(page)
}

// BaseName derives the artifact base name from the query and capture date.
// The query is reduced to letters, digits, underscores, spaces and hyphens,
// whitespace runs become underscores, and the result is uppercased. Queries
// that reduce to fewer than two characters fall back to the first word of
// the company name when that word survives sanitising; otherwise a single
// character query is kept, and an empty one becomes STOCK. The date is
// appended as DD-MM-YYYY.
func BaseName(query, company string, date time.Time) string {
	name := sanitizeName(query)
	if utf8.RuneCountInString(name) < 2 {
		if fields := strings.Fields(company); len(fields) > 0 {
			if first := sanitizeName(fields[0]); first != "" {
				name = first
			}
		}
	}
	if name == "" {
		name = fallbackBase
	}
	return strings.ToUpper(name) + "_" + date.Format(baseDateLayout)
}

func sanitizeName(s string) string {
	cleaned := strings.TrimSpace(unsafeNameChars.ReplaceAllString(s, ""))
	return whitespaceRun.ReplaceAllString(cleaned, "_")
}
