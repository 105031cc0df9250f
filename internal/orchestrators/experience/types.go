package experience

import (
	"github.com/studyquest/progression/internal/entities/progression"
)

// AddXPInput awards raw XP to a profile, optionally attributed to a zone.
type AddXPInput struct {
	ProfileID string

	// Amount must be >= 0. Zero is accepted as a no-op.
	Amount int

	// ZoneID, when set, also accrues Amount into the zone's subject
	// bucket (prefix before the first "-").
	ZoneID string
}

// AddXPOutput reports the post-award ledger state.
type AddXPOutput struct {
	LeveledUp bool
	NewLevel  int
	Ledger    *progression.ExperienceLedger
}

// RecordBattleOutcomeInput reports one finished battle. The caller reports
// each battle exactly once; boss victory is the caller's call since win
// conditions live in the UI layer.
type RecordBattleOutcomeInput struct {
	ProfileID    string
	Results      *progression.BattleResults
	BossDefeated bool
}

// RecordBattleOutcomeOutput reports the post-award ledger state.
type RecordBattleOutcomeOutput struct {
	LeveledUp bool
	NewLevel  int
	Ledger    *progression.ExperienceLedger
}

// GetLedgerInput identifies the profile to read.
type GetLedgerInput struct {
	ProfileID string
}

// GetLedgerOutput carries the current ledger snapshot. A profile that has
// never earned XP reads as a fresh level-1 ledger.
type GetLedgerOutput struct {
	Ledger *progression.ExperienceLedger
}
