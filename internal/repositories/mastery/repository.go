// Package mastery provides the repository for per-zone mastery records.
package mastery

import (
	"context"

	"github.com/studyquest/progression/internal/entities/progression"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=masterymock github.com/studyquest/progression/internal/repositories/mastery Repository

// GetInput identifies the profile whose zone records to load.
type GetInput struct {
	ProfileID string
}

// GetOutput carries every known zone record, keyed by zone ID.
type GetOutput struct {
	Zones map[string]*progression.ZoneMastery
}

// SaveInput carries the full zone map to persist.
type SaveInput struct {
	ProfileID string
	Zones     map[string]*progression.ZoneMastery
}

// SaveOutput is the result of persisting the zone map.
type SaveOutput struct{}

// Repository stores one zone-mastery blob per profile.
type Repository interface {
	// Get loads all zone records; NotFound when the profile has never
	// recorded an attempt.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save replaces the zone-mastery blob atomically.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
