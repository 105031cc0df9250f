// Package codex provides the repository for codex read- and seen-tracking.
package codex

import (
	"context"

	"github.com/studyquest/progression/internal/entities/progression"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=codexmock github.com/studyquest/progression/internal/repositories/codex Repository

// GetInput identifies the profile whose codex state to load.
type GetInput struct {
	ProfileID string
}

// GetOutput carries the loaded state.
type GetOutput struct {
	State *progression.CodexState
}

// SaveInput carries the state snapshot to persist.
type SaveInput struct {
	ProfileID string
	State     *progression.CodexState
}

// SaveOutput is the result of persisting the state.
type SaveOutput struct{}

// Repository stores one codex state blob per profile. Unlock status is
// never stored here; only read- and seen-tracking is.
type Repository interface {
	// Get loads the state; NotFound when the profile has no codex history.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save replaces the state blob atomically.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
