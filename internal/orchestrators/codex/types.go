package codex

import (
	"github.com/studyquest/progression/internal/entities/progression"
)

// GetProgressInput asks for the aggregate codex view for a profile.
type GetProgressInput struct {
	ProfileID string
	Stats     *progression.PlayerStats
}

// GetProgressOutput carries the aggregate codex view.
type GetProgressOutput struct {
	Progress progression.CodexProgress
}

// MarkChapterReadInput marks one chapter as read.
type MarkChapterReadInput struct {
	ProfileID string
	ChapterID string
}

// MarkChapterReadOutput reports the updated state.
type MarkChapterReadOutput struct {
	State *progression.CodexState
}

// MarkBonusReadInput marks one bonus fragment as read.
type MarkBonusReadInput struct {
	ProfileID string
	BonusID   string
}

// MarkBonusReadOutput reports the updated state.
type MarkBonusReadOutput struct {
	State *progression.CodexState
}

// CheckForNewUnlocksInput asks which items became unlocked since the
// last check.
type CheckForNewUnlocksInput struct {
	ProfileID string
	Stats     *progression.PlayerStats
}

// CheckForNewUnlocksOutput carries only the newly unlocked items, in
// catalogue order. Items reported here are never reported again.
type CheckForNewUnlocksOutput struct {
	NewChapters []progression.Chapter
	NewBonus    []progression.BonusFragment
}
