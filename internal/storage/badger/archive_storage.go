package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/finquant/internal/common"
	"github.com/ternarybob/finquant/internal/interfaces"
	"github.com/ternarybob/finquant/internal/models"
)

// ArchiveStorage implements interfaces.ArchiveStorage on Badger. Entries are
// keyed by artifact base name, mirroring the overwrite semantics of the
// artifact files themselves.
type ArchiveStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewArchiveStorage creates a new ArchiveStorage instance
func NewArchiveStorage(db *BadgerDB, logger arbor.ILogger) *ArchiveStorage {
	return &ArchiveStorage{db: db, logger: logger}
}

// OpenArchive opens the Badger store at config.Path and wraps it
func OpenArchive(logger arbor.ILogger, config *common.BadgerConfig) (*ArchiveStorage, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}
	return NewArchiveStorage(db, logger), nil
}

// Upsert stores the entry under its base name
func (s *ArchiveStorage) Upsert(ctx context.Context, entry *models.ArchiveEntry) error {
	if entry.BaseName == "" {
		return fmt.Errorf("archive entry base name is required")
	}
	if err := s.db.Store().Upsert(entry.BaseName, entry); err != nil {
		return fmt.Errorf("failed to save archive entry: %w", err)
	}
	s.logger.Debug().Str("base_name", entry.BaseName).Str("run_id", entry.RunID).Msg("Archive entry saved")
	return nil
}

// Get retrieves an entry by base name
func (s *ArchiveStorage) Get(ctx context.Context, baseName string) (*models.ArchiveEntry, error) {
	var entry models.ArchiveEntry
	if err := s.db.Store().Get(baseName, &entry); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrArchiveEntryNotFound, baseName)
		}
		return nil, fmt.Errorf("failed to get archive entry: %w", err)
	}
	return &entry, nil
}

// List returns entries ordered by GeneratedAt, newest first
func (s *ArchiveStorage) List(ctx context.Context, limit int) ([]*models.ArchiveEntry, error) {
	var entries []models.ArchiveEntry
	if err := s.db.Store().Find(&entries, nil); err != nil {
		return nil, fmt.Errorf("failed to list archive entries: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].GeneratedAt.After(entries[j].GeneratedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	result := make([]*models.ArchiveEntry, len(entries))
	for i := range entries {
		result[i] = &entries[i]
	}
	return result, nil
}

// Delete removes an entry by base name
func (s *ArchiveStorage) Delete(ctx context.Context, baseName string) error {
	if err := s.db.Store().Delete(baseName, &models.ArchiveEntry{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%w: %s", interfaces.ErrArchiveEntryNotFound, baseName)
		}
		return fmt.Errorf("failed to delete archive entry: %w", err)
	}
	return nil
}

// Close closes the underlying store
func (s *ArchiveStorage) Close() error {
	return s.db.Close()
}

var _ interfaces.ArchiveStorage = (*ArchiveStorage)(nil)
