package continuity

import (
	"github.com/studyquest/progression/internal/entities/progression"
)

// RecordActivityInput marks the profile active today.
type RecordActivityInput struct {
	ProfileID string
}

// RecordActivityOutput reports the streak transition.
type RecordActivityOutput struct {
	// StreakMaintained is true for same-day calls, consecutive days,
	// first-ever activity, and shield-saved gaps; false only when the
	// streak reset.
	StreakMaintained bool

	// StreakWasReset flags a fresh start for caller-facing messaging.
	// Never an error: a reset is a normal transition.
	StreakWasReset bool

	// PreviousStreak is the streak length before a reset, zero otherwise.
	PreviousStreak int

	// Milestone is set when this activity reached an unclaimed milestone.
	Milestone *progression.Milestone

	// ShieldConsumed is set when an unused shield absorbed the gap.
	ShieldConsumed bool

	Record *progression.ContinuityRecord
}

// ReconcileOnLoadInput identifies the profile to reconcile.
type ReconcileOnLoadInput struct {
	ProfileID string
}

// ReconcileOnLoadOutput reports whether the stored streak had lapsed.
type ReconcileOnLoadOutput struct {
	StreakExpired bool
	Record        *progression.ContinuityRecord
}

// GetMomentumMessageInput identifies the profile to read.
type GetMomentumMessageInput struct {
	ProfileID string
}

// GetMomentumMessageOutput carries the encouragement copy for the current
// streak state.
type GetMomentumMessageOutput struct {
	Message progression.MomentumMessage
}

// GetRecordInput identifies the profile to read.
type GetRecordInput struct {
	ProfileID string
}

// GetRecordOutput carries the current continuity snapshot. A profile with
// no history reads as a fresh cold record.
type GetRecordOutput struct {
	Record *progression.ContinuityRecord
}
