package models

import "time"

// VerdictRequest names the company page to capture and the ticker whose
// prices are fused with it.
type VerdictRequest struct {
	ScreenerName string `json:"screener_name" validate:"required"`
	Ticker       string `json:"yfinance_ticker" validate:"required"`
}

// VerdictPayload is the combined result handed to the recommendation layer.
type VerdictPayload struct {
	Metadata            SnapshotMetadata `json:"metadata"`
	ScreenerName        string           `json:"screener_name"`
	Ticker              string           `json:"yfinance_ticker"`
	TechnicalReport     string           `json:"technical_report"`
	FundamentalSnapshot string           `json:"fundamental_snapshot"`
	SavedFiles          []string         `json:"saved_files"`
	GeneratedAt         string           `json:"generated_at"`

	// Not part of the wire payload; kept for archiving and logging.
	BaseName      string `json:"-"`
	RunID         string `json:"-"`
	TechnicalPath string `json:"-"`
}

// ArchiveEntry is the durable index record of one pipeline invocation.
// It is keyed by BaseName so that same-day re-runs overwrite it.
type ArchiveEntry struct {
	BaseName        string    `json:"base_name"`
	Query           string    `json:"query"`
	Company         string    `json:"company"`
	Ticker          string    `json:"ticker"`
	URL             string    `json:"url"`
	SavedFiles      []string  `json:"saved_files"`
	TechnicalReport string    `json:"technical_report"`
	GeneratedAt     time.Time `json:"generated_at"`
	RunID           string    `json:"run_id"`
}
