// Package ledger provides the repository for the experience ledger blob.
package ledger

import (
	"context"

	"github.com/studyquest/progression/internal/entities/progression"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=ledgermock github.com/studyquest/progression/internal/repositories/ledger Repository

// GetInput identifies the profile whose ledger to load.
type GetInput struct {
	ProfileID string
}

// GetOutput carries the loaded ledger.
type GetOutput struct {
	Ledger *progression.ExperienceLedger
}

// SaveInput carries the ledger snapshot to persist.
type SaveInput struct {
	ProfileID string
	Ledger    *progression.ExperienceLedger
}

// SaveOutput is the result of persisting a ledger.
type SaveOutput struct{}

// Repository stores one experience ledger blob per profile.
type Repository interface {
	// Get loads the ledger; NotFound when the profile has never persisted.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save replaces the ledger blob atomically.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
