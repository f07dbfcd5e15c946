package models

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row maps period labels (table header order) to normalized values.
type Row = orderedmap.OrderedMap[string, Value]

// Section maps metric names (document row order) to their period rows.
// Re-setting an existing metric replaces its row in place (last write wins).
type Section = orderedmap.OrderedMap[string, *Row]

// RangeTable maps a growth range label (e.g. "3 Years") to its value.
type RangeTable = orderedmap.OrderedMap[string, Value]

// GrowthMetrics maps a growth table title (e.g. "Compounded Sales Growth")
// to its ranges.
type GrowthMetrics = orderedmap.OrderedMap[string, *RangeTable]

func NewRow() *Row                     { return orderedmap.New[string, Value]() }
func NewSection() *Section             { return orderedmap.New[string, *Row]() }
func NewRangeTable() *RangeTable       { return orderedmap.New[string, Value]() }
func NewGrowthMetrics() *GrowthMetrics { return orderedmap.New[string, *RangeTable]() }

// Section keys used for artifact names and JSON fields.
const (
	SectionQuarters     = "quarters"
	SectionProfitLoss   = "profit_loss"
	SectionBalanceSheet = "balance_sheet"
	SectionShareholding = "shareholding"
	SectionAnalysis     = "analysis"
)

// SectionNames lists the snapshot sections in artifact order.
var SectionNames = []string{
	SectionQuarters,
	SectionProfitLoss,
	SectionBalanceSheet,
	SectionShareholding,
	SectionAnalysis,
}

// ProfitLoss holds the annual P&L table and the compounded growth ranges.
type ProfitLoss struct {
	AnnualData    *Section       `json:"annual_data"`
	GrowthMetrics *GrowthMetrics `json:"growth_metrics"`
}

// ShareholdingSection holds the quarterly and yearly shareholding tables.
type ShareholdingSection struct {
	Quarterly *Section `json:"quarterly"`
	Yearly    *Section `json:"yearly"`
}

// QualitativeSection holds the analyst pros and cons bullet lists.
type QualitativeSection struct {
	Pros []string `json:"pros"`
	Cons []string `json:"cons"`
}

// SnapshotMetadata describes where and when a snapshot was captured.
type SnapshotMetadata struct {
	Company    string    `json:"company"`
	UserQuery  string    `json:"user_query"`
	ScrapedAt  string    `json:"scraped_at"`
	URL        string    `json:"url"`
	CapturedAt time.Time `json:"-"`
}

// Snapshot is the canonical typed capture of one company page.
type Snapshot struct {
	Metadata     SnapshotMetadata    `json:"metadata"`
	Quarters     *Section            `json:"quarters"`
	ProfitLoss   ProfitLoss          `json:"profit_loss"`
	BalanceSheet *Section            `json:"balance_sheet"`
	Shareholding ShareholdingSection `json:"shareholding"`
	Analysis     QualitativeSection  `json:"analysis"`
}

// NewSnapshot returns a snapshot whose sections are all empty but non-nil,
// so that every section serializes as {} or [] rather than null.
func NewSnapshot(meta SnapshotMetadata) *Snapshot {
	return &Snapshot{
		Metadata:     meta,
		Quarters:     NewSection(),
		ProfitLoss:   EmptyProfitLoss(),
		BalanceSheet: NewSection(),
		Shareholding: EmptyShareholding(),
		Analysis:     EmptyQualitative(),
	}
}

func EmptyProfitLoss() ProfitLoss {
	return ProfitLoss{AnnualData: NewSection(), GrowthMetrics: NewGrowthMetrics()}
}

func EmptyShareholding() ShareholdingSection {
	return ShareholdingSection{Quarterly: NewSection(), Yearly: NewSection()}
}

func EmptyQualitative() QualitativeSection {
	return QualitativeSection{Pros: []string{}, Cons: []string{}}
}

// SectionValue returns the serializable value of a named section, or nil
// for an unknown name.
func (s *Snapshot) SectionValue(name string) any {
	switch name {
	case SectionQuarters:
		return s.Quarters
	case SectionProfitLoss:
		return s.ProfitLoss
	case SectionBalanceSheet:
		return s.BalanceSheet
	case SectionShareholding:
		return s.Shareholding
	case SectionAnalysis:
		return s.Analysis
	}
	return nil
}

// RenderedPage is the document a session hands to the extractors: the
// outer HTML of the loaded company page plus its location and the query
// that produced it.
type RenderedPage struct {
	HTML       string
	URL        string
	Query      string
	CapturedAt time.Time
}
