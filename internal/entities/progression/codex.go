package progression

// UnlockRequirement gates one codex item behind an aggregate stat threshold.
type UnlockRequirement struct {
	Kind        RequirementKind `yaml:"kind"`
	Threshold   float64         `yaml:"threshold"`
	Description string          `yaml:"description"`
}

// Chapter is a narrative codex entry, unlocked by a single requirement.
type Chapter struct {
	ID          string            `yaml:"id"`
	Ordinal     int               `yaml:"ordinal"`
	Title       string            `yaml:"title"`
	Summary     string            `yaml:"summary,omitempty"`
	Requirement UnlockRequirement `yaml:"requirement"`
}

// BonusFragment is a short optional codex entry, unlocked like a chapter.
type BonusFragment struct {
	ID          string            `yaml:"id"`
	Ordinal     int               `yaml:"ordinal"`
	Title       string            `yaml:"title"`
	Requirement UnlockRequirement `yaml:"requirement"`
}

// CodexState is the persisted read- and seen-tracking for one profile.
// Unlock status itself is never stored; it is recomputed from PlayerStats
// on every query.
type CodexState struct {
	// Read sets are append-only.
	ReadChapterIDs []string
	ReadBonusIDs   []string

	// Seen sets record items already reported as newly unlocked, so
	// unlock notifications fire once.
	SeenChapterIDs []string
	SeenBonusIDs   []string

	LastViewedChapterID string
	LastViewedBonusID   string
}

// CodexProgress is the aggregate unlock/read view for the codex screen.
type CodexProgress struct {
	ChaptersUnlocked int
	ChaptersTotal    int
	BonusUnlocked    int
	BonusTotal       int

	// Read counts only include reads of currently unlocked items.
	ChaptersRead int
	BonusRead    int
}
