// Package progression implements the progression engine entities.
// NOTE: These are data-only structs. All rules (level curve, tier ladder,
// streak transitions, scoring) live in the orchestrators, not here.
package progression

// ExperienceLedger is the lifetime XP state for one profile.
type ExperienceLedger struct {
	TotalXP        int
	Level          int
	CurrentLevelXP int
	XPToNextLevel  int

	// SubjectXP accrues per-subject buckets keyed by the zone prefix
	// before the first "-" (e.g. "maths-algebra-1" -> "maths").
	SubjectXP map[string]int

	// Battle outcome counters reported once per finished battle.
	PerfectGames   int
	BossesDefeated int

	UpdatedAt int64
}

// ZoneMastery is the per-zone attempt ledger and derived tier.
type ZoneMastery struct {
	ZoneID             string
	QuestionsAttempted int
	QuestionsCorrect   int

	// Mastery is recomputed from lifetime accuracy on every attempt and
	// may regress if accuracy falls. BestMastery records the historical
	// high and never regresses.
	Mastery     Tier
	BestMastery Tier

	BestCombo     int
	LastAttemptAt int64
}

// Shield is a consumable token forgiving exactly one missed day.
type Shield struct {
	ID       string
	Used     bool
	EarnedAt int64
}

// ContinuityRecord is the daily-activity streak state for one profile.
type ContinuityRecord struct {
	CurrentStreak int
	LongestStreak int

	// PreviousStreak holds the streak length before the last reset, for
	// fresh-start messaging.
	PreviousStreak int
	StreakWasReset bool

	// LastActivityDate is a device-local calendar date, YYYY-MM-DD.
	// Empty until the first recorded activity.
	LastActivityDate string

	Shields []Shield

	// MilestonesReached lists day-counts already rewarded.
	MilestonesReached []int

	FlameIntensity FlameIntensity
}

// UnusedShields counts the shields still available for consumption.
func (r *ContinuityRecord) UnusedShields() int {
	n := 0
	for _, s := range r.Shields {
		if !s.Used {
			n++
		}
	}
	return n
}

// HasMilestone reports whether the given day-count was already rewarded.
func (r *ContinuityRecord) HasMilestone(days int) bool {
	for _, d := range r.MilestonesReached {
		if d == days {
			return true
		}
	}
	return false
}

// Milestone is a streak day-count reward table entry.
type Milestone struct {
	Days         int
	Title        string
	GrantsShield bool
}

// MomentumMessage is the encouragement copy shown for the current streak.
type MomentumMessage struct {
	Title         string
	Subtitle      string
	Encouragement string
}

// PlayerStats is the aggregate snapshot fed to the codex unlock evaluator.
// It is assembled by the caller from the ledger, mastery, and continuity
// stores; the evaluator never computes it itself.
type PlayerStats struct {
	TotalXP         int
	CompletedZones  int
	BossesDefeated  int
	CurrentStreak   int
	LongestStreak   int
	OverallMastery  float64 // 0-100 percentage
	PerfectGames    int
	SubjectsStarted int
}
