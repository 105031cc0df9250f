// Package experience implements the experience ledger: XP awards, the level
// curve, and per-subject accrual.
package experience

//go:generate mockgen -destination=mock/mock_service.go -package=experiencemock github.com/studyquest/progression/internal/orchestrators/experience Service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/pkg/clock"
	"github.com/studyquest/progression/internal/repositories/ledger"
)

// Service defines the interface for experience ledger operations.
type Service interface {
	// AddXP awards XP and applies the level curve, carrying over
	// multi-level jumps in a single call.
	AddXP(ctx context.Context, input *AddXPInput) (*AddXPOutput, error)

	// RecordBattleOutcome awards a finished battle's XP and updates the
	// perfect-game and boss-defeat counters.
	RecordBattleOutcome(ctx context.Context, input *RecordBattleOutcomeInput) (*RecordBattleOutcomeOutput, error)

	// GetLedger returns the current ledger snapshot.
	GetLedger(ctx context.Context, input *GetLedgerInput) (*GetLedgerOutput, error)
}

// Config holds the dependencies for the experience orchestrator.
type Config struct {
	LedgerRepo ledger.Repository
	Clock      clock.Clock
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.LedgerRepo == nil {
		vb.RequiredField("LedgerRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	ledgerRepo ledger.Repository
	clock      clock.Clock
}

// NewOrchestrator creates an experience orchestrator with the provided
// dependencies.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		ledgerRepo: cfg.LedgerRepo,
		clock:      cfg.Clock,
	}, nil
}

// XPToNextLevel returns the XP needed to finish the given level:
// floor(100 * 1.15^(level-1)).
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(1.15, float64(level-1))))
}

// SubjectOf derives the subject bucket from a zone ID: the prefix before
// the first "-", or the whole ID when there is no separator.
func SubjectOf(zoneID string) string {
	if subject, _, found := strings.Cut(zoneID, "-"); found {
		return subject
	}
	return zoneID
}

func newLedger() *progression.ExperienceLedger {
	return &progression.ExperienceLedger{
		Level:         1,
		XPToNextLevel: XPToNextLevel(1),
		SubjectXP:     make(map[string]int),
	}
}

// AddXP awards XP and applies the level curve.
func (o *orchestrator) AddXP(ctx context.Context, input *AddXPInput) (*AddXPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgumentf("xp amount must be >= 0, got %d", input.Amount)
	}

	led, err := o.loadLedger(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	if input.Amount == 0 {
		return &AddXPOutput{NewLevel: led.Level, Ledger: led}, nil
	}

	leveledUp := o.applyXP(led, input.Amount, input.ZoneID)

	if err := o.saveLedger(ctx, input.ProfileID, led); err != nil {
		return nil, err
	}

	if leveledUp {
		slog.Info("level up",
			"profile_id", input.ProfileID,
			"level", led.Level,
			"total_xp", led.TotalXP,
		)
	}

	return &AddXPOutput{LeveledUp: leveledUp, NewLevel: led.Level, Ledger: led}, nil
}

// RecordBattleOutcome awards battle XP and updates outcome counters.
func (o *orchestrator) RecordBattleOutcome(ctx context.Context, input *RecordBattleOutcomeInput) (*RecordBattleOutcomeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}
	if input.Results == nil {
		return nil, errors.InvalidArgument("results cannot be nil")
	}

	led, err := o.loadLedger(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	leveledUp := o.applyXP(led, input.Results.XPEarned, input.Results.ZoneID)
	if input.Results.PerfectRound {
		led.PerfectGames++
	}
	if input.BossDefeated {
		led.BossesDefeated++
	}

	if err := o.saveLedger(ctx, input.ProfileID, led); err != nil {
		return nil, err
	}

	slog.Info("battle outcome recorded",
		"profile_id", input.ProfileID,
		"zone_id", input.Results.ZoneID,
		"xp_earned", input.Results.XPEarned,
		"perfect", input.Results.PerfectRound,
		"boss_defeated", input.BossDefeated,
	)

	return &RecordBattleOutcomeOutput{LeveledUp: leveledUp, NewLevel: led.Level, Ledger: led}, nil
}

// GetLedger returns the current ledger snapshot.
func (o *orchestrator) GetLedger(ctx context.Context, input *GetLedgerInput) (*GetLedgerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	led, err := o.loadLedger(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	return &GetLedgerOutput{Ledger: led}, nil
}

// applyXP mutates the ledger with one award and reports whether it crossed
// at least one level boundary. Amount zero leaves the ledger untouched.
func (o *orchestrator) applyXP(led *progression.ExperienceLedger, amount int, zoneID string) bool {
	if amount <= 0 {
		return false
	}

	led.TotalXP += amount
	led.CurrentLevelXP += amount

	leveledUp := false
	for led.CurrentLevelXP >= led.XPToNextLevel {
		led.CurrentLevelXP -= led.XPToNextLevel
		led.Level++
		led.XPToNextLevel = XPToNextLevel(led.Level)
		leveledUp = true
	}

	if zoneID != "" {
		if led.SubjectXP == nil {
			led.SubjectXP = make(map[string]int)
		}
		led.SubjectXP[SubjectOf(zoneID)] += amount
	}

	led.UpdatedAt = o.clock.Now().Unix()
	return leveledUp
}

func (o *orchestrator) loadLedger(ctx context.Context, profileID string) (*progression.ExperienceLedger, error) {
	output, err := o.ledgerRepo.Get(ctx, ledger.GetInput{ProfileID: profileID})
	if err != nil {
		if errors.IsNotFound(err) {
			return newLedger(), nil
		}
		return nil, errors.Wrap(err, "failed to load ledger")
	}
	if output.Ledger == nil {
		return newLedger(), nil
	}
	return output.Ledger, nil
}

func (o *orchestrator) saveLedger(ctx context.Context, profileID string, led *progression.ExperienceLedger) error {
	if _, err := o.ledgerRepo.Save(ctx, ledger.SaveInput{ProfileID: profileID, Ledger: led}); err != nil {
		return errors.Wrap(err, "failed to persist ledger")
	}
	return nil
}
