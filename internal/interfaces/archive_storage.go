package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/finquant/internal/models"
)

// ErrArchiveEntryNotFound is returned when no archive entry has the base name
var ErrArchiveEntryNotFound = errors.New("archive entry not found")

// ArchiveStorage indexes past pipeline runs by artifact base name.
type ArchiveStorage interface {
	// Upsert stores the entry, replacing any entry with the same base name
	Upsert(ctx context.Context, entry *models.ArchiveEntry) error

	// Get retrieves an entry by base name
	Get(ctx context.Context, baseName string) (*models.ArchiveEntry, error)

	// List returns entries newest first; limit <= 0 returns all
	List(ctx context.Context, limit int) ([]*models.ArchiveEntry, error)

	// Delete removes an entry by base name
	Delete(ctx context.Context, baseName string) error

	// Close closes the underlying store
	Close() error
}
