// Package continuity provides the repository for the streak record blob.
package continuity

import (
	"context"

	"github.com/studyquest/progression/internal/entities/progression"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=continuitymock github.com/studyquest/progression/internal/repositories/continuity Repository

// GetInput identifies the profile whose continuity record to load.
type GetInput struct {
	ProfileID string
}

// GetOutput carries the loaded record.
type GetOutput struct {
	Record *progression.ContinuityRecord
}

// SaveInput carries the record snapshot to persist.
type SaveInput struct {
	ProfileID string
	Record    *progression.ContinuityRecord
}

// SaveOutput is the result of persisting a record.
type SaveOutput struct{}

// Repository stores one continuity record blob per profile.
type Repository interface {
	// Get loads the record; NotFound when the profile has never recorded
	// activity.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save replaces the record blob atomically.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
