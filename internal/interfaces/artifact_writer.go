package interfaces

import (
	"github.com/ternarybob/finquant/internal/models"
)

// ArtifactWriter persists snapshot sections and reports to disk.
type ArtifactWriter interface {
	// WriteSnapshot writes the five section artifacts and the FULL artifact.
	// It returns the paths written successfully, in order, and a joined
	// error describing any artifacts that failed.
	WriteSnapshot(baseName string, snapshot *models.Snapshot) ([]string, error)

	// WriteTechnical writes the market statistics report.
	WriteTechnical(baseName string, report string) (string, error)
}
