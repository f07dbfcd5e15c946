package artifacts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/interfaces"
	"github.com/ternarybob/finquant/internal/models"
)

const (
	fullSuffix      = "FULL"
	technicalSuffix = "Technical"
)

// Writer persists snapshot sections as JSON files and market reports as
// markdown. File names derive only from the base name, so re-running the
// same query on the same day overwrites rather than duplicates.
type Writer struct {
	snapshotDir string
	reportDir   string
	logger      arbor.ILogger
}

// NewWriter creates an artifact writer
func NewWriter(snapshotDir, reportDir string, logger arbor.ILogger) *Writer {
	return &Writer{snapshotDir: snapshotDir, reportDir: reportDir, logger: logger}
}

// SnapshotPath returns the artifact path for one section (or "FULL").
func (w *Writer) SnapshotPath(baseName, section string) string {
	return filepath.Join(w.snapshotDir, fmt.Sprintf("%s_%s.json", baseName, section))
}

// TechnicalPath returns the market report path for a base name.
func (w *Writer) TechnicalPath(baseName string) string {
	return filepath.Join(w.reportDir, fmt.Sprintf("%s_%s.md", baseName, technicalSuffix))
}

// WriteSnapshot writes each section then the full snapshot. Every artifact
// is attempted; failures are joined into the returned error.
func (w *Writer) WriteSnapshot(baseName string, snapshot *models.Snapshot) ([]string, error) {
	if err := os.MkdirAll(w.snapshotDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", models.ErrPersistence, w.snapshotDir, err)
	}

	saved := make([]string, 0, len(models.SectionNames)+1)
	var errs []error

	write := func(path string, v any) {
		if err := writeJSON(path, v); err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("Failed to write artifact")
			errs = append(errs, fmt.Errorf("%w: %s: %v", models.ErrPersistence, path, err))
			return
		}
		w.logger.Info().Str("path", path).Msg("Artifact written")
		saved = append(saved, path)
	}

	for _, section := range models.SectionNames {
		write(w.SnapshotPath(baseName, section), snapshot.SectionValue(section))
	}
	write(w.SnapshotPath(baseName, fullSuffix), snapshot)

	w.logger.Info().
		Str("base_name", baseName).
		Int("saved", len(saved)).
		Int("failed", len(errs)).
		Msg("Snapshot artifacts written")

	return saved, errors.Join(errs...)
}

// WriteTechnical writes the market report markdown.
func (w *Writer) WriteTechnical(baseName string, report string) (string, error) {
	if err := os.MkdirAll(w.reportDir, 0755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", models.ErrPersistence, w.reportDir, err)
	}

	path := w.TechnicalPath(baseName)
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", models.ErrPersistence, path, err)
	}

	w.logger.Info().Str("path", path).Msg("Technical report written")
	return path, nil
}

// MarshalSnapshot renders v as two-space indented JSON without HTML escaping.
func MarshalSnapshot(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeJSON(path string, v any) error {
	data, err := MarshalSnapshot(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

var _ interfaces.ArtifactWriter = (*Writer)(nil)
