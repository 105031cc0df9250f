package progression

// Tier is the per-zone mastery rank derived from accuracy and volume.
type Tier string

// Mastery tiers, lowest to highest.
const (
	TierNone   Tier = "none"
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Rank returns the ladder position of the tier, 0 for none.
func (t Tier) Rank() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	default:
		return 0
	}
}

// FlameIntensity is the display intensity of the continuity streak.
type FlameIntensity string

// Flame intensities by streak length.
const (
	FlameCold    FlameIntensity = "cold"
	FlameWarm    FlameIntensity = "warm"
	FlameHot     FlameIntensity = "hot"
	FlameBlazing FlameIntensity = "blazing"
)

// BattlePhase is the position of a battle session in its lifecycle.
type BattlePhase string

// Battle phases. Forward-progressing except capsule, which bounces back
// into the next question.
const (
	PhaseLoading  BattlePhase = "loading"
	PhaseReady    BattlePhase = "ready"
	PhaseQuestion BattlePhase = "question"
	PhaseFeedback BattlePhase = "feedback"
	PhaseCapsule  BattlePhase = "capsule"
	PhaseResults  BattlePhase = "results"
)

// Difficulty is the question difficulty band used for base XP.
type Difficulty string

// Question difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// QuestionType selects the answer-equality rule for a question.
type QuestionType string

// Question types.
const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionNumeric        QuestionType = "numeric"
	QuestionOrdering       QuestionType = "ordering"
	QuestionMatching       QuestionType = "matching"
	QuestionFreeText       QuestionType = "free_text"
)

// RequirementKind is the closed set of codex unlock requirement kinds.
// The zero value is deliberately not a valid kind: an unknown or missing
// kind never unlocks anything.
type RequirementKind string

// Requirement kinds.
const (
	RequirementXP          RequirementKind = "xp"
	RequirementZones       RequirementKind = "zones"
	RequirementBosses      RequirementKind = "bosses"
	RequirementStreak      RequirementKind = "streak"
	RequirementMastery     RequirementKind = "mastery"
	RequirementPerfect     RequirementKind = "perfect"
	RequirementAllSubjects RequirementKind = "all_subjects"
)
