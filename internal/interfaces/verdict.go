package interfaces

import (
	"context"

	"github.com/ternarybob/finquant/internal/models"
)

// VerdictBuilder runs the full capture and market pipeline for one company
type VerdictBuilder interface {
	Build(ctx context.Context, req models.VerdictRequest) (*models.VerdictPayload, error)
}
