package interfaces

import (
	"context"

	"github.com/ternarybob/finquant/internal/models"
)

// DocumentSession is an exclusive, single-use browser session that locates
// one company page. Close must be called on every exit path.
type DocumentSession interface {
	// Start acquires the browser. Failure is ErrDocumentUnavailable.
	Start(ctx context.Context) error

	// Search submits the company query and blocks until the company page
	// is ready or the ready bound elapses (ErrDocumentUnavailable).
	Search(ctx context.Context, query string) error

	// Page returns the rendered company page. Only valid once the session
	// is in SessionDocumentReady.
	Page() (*models.RenderedPage, error)

	// State reports the current lifecycle state.
	State() models.SessionState

	// Close releases the browser. Safe to call more than once.
	Close() error
}

// SessionFactory creates one fresh DocumentSession per pipeline invocation.
type SessionFactory interface {
	NewSession() DocumentSession
}
