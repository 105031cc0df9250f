// Package continuity implements the daily streak: activity recording,
// shield consumption, milestone rewards, and lazy expiry on load.
package continuity

//go:generate mockgen -destination=mock/mock_service.go -package=continuitymock github.com/studyquest/progression/internal/orchestrators/continuity Service

import (
	"context"
	"log/slog"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/pkg/clock"
	"github.com/studyquest/progression/internal/pkg/idgen"
	continuityrepo "github.com/studyquest/progression/internal/repositories/continuity"
)

// dateLayout is the device-local calendar date format.
const dateLayout = "2006-01-02"

// Milestones is the fixed streak reward table. Day counts must match the
// streak exactly to claim; each entry is claimed at most once per profile.
var Milestones = []progression.Milestone{
	{Days: 3, Title: "Three-Day Spark"},
	{Days: 7, Title: "One-Week Flame", GrantsShield: true},
	{Days: 14, Title: "Two-Week Torch"},
	{Days: 30, Title: "Thirty-Day Blaze", GrantsShield: true},
	{Days: 50, Title: "Fifty-Day Beacon"},
	{Days: 100, Title: "Hundred-Day Bonfire", GrantsShield: true},
	{Days: 365, Title: "Year-Long Inferno", GrantsShield: true},
}

// Service defines the interface for continuity tracking operations.
type Service interface {
	// RecordActivity marks today active, at most meaningfully once per
	// calendar day.
	RecordActivity(ctx context.Context, input *RecordActivityInput) (*RecordActivityOutput, error)

	// ReconcileOnLoad applies lazy streak expiry. The composition root
	// calls it exactly once per process start, before anything else.
	ReconcileOnLoad(ctx context.Context, input *ReconcileOnLoadInput) (*ReconcileOnLoadOutput, error)

	// GetMomentumMessage returns the encouragement copy for the current
	// streak. Resets read as fresh starts, never as failures.
	GetMomentumMessage(ctx context.Context, input *GetMomentumMessageInput) (*GetMomentumMessageOutput, error)

	// GetRecord returns the current continuity snapshot.
	GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error)
}

// Config holds the dependencies for the continuity orchestrator.
type Config struct {
	ContinuityRepo continuityrepo.Repository
	Clock          clock.Clock
	IDGenerator    idgen.Generator
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ContinuityRepo == nil {
		vb.RequiredField("ContinuityRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	continuityRepo continuityrepo.Repository
	clock          clock.Clock
	idGen          idgen.Generator
}

// NewOrchestrator creates a continuity orchestrator with the provided
// dependencies.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		continuityRepo: cfg.ContinuityRepo,
		clock:          cfg.Clock,
		idGen:          cfg.IDGenerator,
	}, nil
}

// FlameFor derives the display intensity from the streak length.
func FlameFor(streak int) progression.FlameIntensity {
	switch {
	case streak <= 0:
		return progression.FlameCold
	case streak < 7:
		return progression.FlameWarm
	case streak < 30:
		return progression.FlameHot
	default:
		return progression.FlameBlazing
	}
}

// RecordActivity marks today active and applies the streak transition.
func (o *orchestrator) RecordActivity(ctx context.Context, input *RecordActivityInput) (*RecordActivityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	rec, err := o.loadRecord(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	// Same calendar date: idempotent no-op, nothing persisted.
	if rec.LastActivityDate == today {
		return &RecordActivityOutput{StreakMaintained: true, Record: rec}, nil
	}

	output := &RecordActivityOutput{StreakMaintained: true}

	switch {
	case rec.LastActivityDate == "":
		// First ever recorded activity.
		rec.CurrentStreak = 1
		rec.StreakWasReset = false

	case rec.LastActivityDate == yesterday:
		rec.CurrentStreak++
		rec.StreakWasReset = false

	default:
		// Gap of two or more days: a shield forgives it once.
		if shield := firstUnusedShield(rec); shield != nil {
			shield.Used = true
			if rec.CurrentStreak == 0 && rec.PreviousStreak > 0 {
				// Load reconciliation already zeroed the streak; the
				// shield restores what it protected.
				rec.CurrentStreak = rec.PreviousStreak
			}
			rec.CurrentStreak++
			rec.StreakWasReset = false
			output.ShieldConsumed = true
		} else {
			if rec.CurrentStreak > 0 {
				rec.PreviousStreak = rec.CurrentStreak
			}
			rec.CurrentStreak = 1
			rec.StreakWasReset = true
			output.StreakMaintained = false
			output.StreakWasReset = true
			output.PreviousStreak = rec.PreviousStreak
		}
	}

	if rec.CurrentStreak > rec.LongestStreak {
		rec.LongestStreak = rec.CurrentStreak
	}

	output.Milestone = o.claimMilestone(rec, now.Unix())
	rec.FlameIntensity = FlameFor(rec.CurrentStreak)
	rec.LastActivityDate = today

	if err := o.saveRecord(ctx, input.ProfileID, rec); err != nil {
		return nil, err
	}

	slog.Info("activity recorded",
		"profile_id", input.ProfileID,
		"streak", rec.CurrentStreak,
		"maintained", output.StreakMaintained,
		"shield_consumed", output.ShieldConsumed,
	)

	output.Record = rec
	return output, nil
}

// ReconcileOnLoad zeroes a lapsed streak so reads before the next
// RecordActivity show a cold flame rather than a stale streak.
func (o *orchestrator) ReconcileOnLoad(ctx context.Context, input *ReconcileOnLoadInput) (*ReconcileOnLoadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	rec, err := o.loadRecord(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	if rec.LastActivityDate == "" || rec.LastActivityDate == today || rec.LastActivityDate == yesterday {
		return &ReconcileOnLoadOutput{Record: rec}, nil
	}

	if rec.CurrentStreak > 0 {
		rec.PreviousStreak = rec.CurrentStreak
	}
	rec.CurrentStreak = 0
	rec.FlameIntensity = progression.FlameCold

	if err := o.saveRecord(ctx, input.ProfileID, rec); err != nil {
		return nil, err
	}

	slog.Info("streak expired on load",
		"profile_id", input.ProfileID,
		"last_activity", rec.LastActivityDate,
		"previous_streak", rec.PreviousStreak,
	)

	return &ReconcileOnLoadOutput{StreakExpired: true, Record: rec}, nil
}

// GetMomentumMessage returns encouragement copy for the current streak.
func (o *orchestrator) GetMomentumMessage(ctx context.Context, input *GetMomentumMessageInput) (*GetMomentumMessageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	rec, err := o.loadRecord(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	return &GetMomentumMessageOutput{Message: MomentumMessageFor(rec)}, nil
}

// GetRecord returns the current continuity snapshot.
func (o *orchestrator) GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	rec, err := o.loadRecord(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	return &GetRecordOutput{Record: rec}, nil
}

// claimMilestone claims an exact-match milestone at most once and appends
// a shield for the shield-bearing entries. Returns nil when nothing new
// was reached.
func (o *orchestrator) claimMilestone(rec *progression.ContinuityRecord, nowUnix int64) *progression.Milestone {
	for i := range Milestones {
		m := Milestones[i]
		if m.Days != rec.CurrentStreak || rec.HasMilestone(m.Days) {
			continue
		}

		rec.MilestonesReached = append(rec.MilestonesReached, m.Days)
		if m.GrantsShield {
			rec.Shields = append(rec.Shields, progression.Shield{
				ID:       o.idGen.Generate(),
				EarnedAt: nowUnix,
			})
		}
		return &m
	}
	return nil
}

// firstUnusedShield returns the oldest unused shield, or nil.
func firstUnusedShield(rec *progression.ContinuityRecord) *progression.Shield {
	for i := range rec.Shields {
		if !rec.Shields[i].Used {
			return &rec.Shields[i]
		}
	}
	return nil
}

func (o *orchestrator) loadRecord(ctx context.Context, profileID string) (*progression.ContinuityRecord, error) {
	output, err := o.continuityRepo.Get(ctx, continuityrepo.GetInput{ProfileID: profileID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &progression.ContinuityRecord{FlameIntensity: progression.FlameCold}, nil
		}
		return nil, errors.Wrap(err, "failed to load continuity record")
	}
	if output.Record == nil {
		return &progression.ContinuityRecord{FlameIntensity: progression.FlameCold}, nil
	}
	return output.Record, nil
}

func (o *orchestrator) saveRecord(ctx context.Context, profileID string, rec *progression.ContinuityRecord) error {
	if _, err := o.continuityRepo.Save(ctx, continuityrepo.SaveInput{ProfileID: profileID, Record: rec}); err != nil {
		return errors.Wrap(err, "failed to persist continuity record")
	}
	return nil
}
