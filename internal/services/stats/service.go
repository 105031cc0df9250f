// Package stats assembles the cross-store PlayerStats snapshot the
// unlock evaluator consumes. The snapshot is computed at read time from
// the independently loaded stores; nothing here is persisted.
package stats

//go:generate mockgen -destination=mock/mock_service.go -package=statsmock github.com/studyquest/progression/internal/services/stats Service

import (
	"context"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/orchestrators/continuity"
	"github.com/studyquest/progression/internal/orchestrators/experience"
	"github.com/studyquest/progression/internal/orchestrators/mastery"
)

// SnapshotInput identifies the profile to snapshot.
type SnapshotInput struct {
	ProfileID string
}

// SnapshotOutput carries the assembled snapshot.
type SnapshotOutput struct {
	Stats *progression.PlayerStats
}

// Service assembles PlayerStats snapshots.
type Service interface {
	// Snapshot reads the ledger, mastery, and continuity stores and
	// derives the aggregate view.
	Snapshot(ctx context.Context, input *SnapshotInput) (*SnapshotOutput, error)
}

// Config holds the dependencies for the stats service.
type Config struct {
	ExperienceService experience.Service
	MasteryService    mastery.Service
	ContinuityService continuity.Service
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ExperienceService == nil {
		vb.RequiredField("ExperienceService")
	}
	if c.MasteryService == nil {
		vb.RequiredField("MasteryService")
	}
	if c.ContinuityService == nil {
		vb.RequiredField("ContinuityService")
	}

	return vb.Build()
}

type service struct {
	experienceService experience.Service
	masteryService    mastery.Service
	continuityService continuity.Service
}

// NewService creates a stats service with the provided dependencies.
func NewService(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &service{
		experienceService: cfg.ExperienceService,
		masteryService:    cfg.MasteryService,
		continuityService: cfg.ContinuityService,
	}, nil
}

func (s *service) Snapshot(ctx context.Context, input *SnapshotInput) (*SnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	ledgerOut, err := s.experienceService.GetLedger(ctx, &experience.GetLedgerInput{ProfileID: input.ProfileID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read experience ledger")
	}

	zonesOut, err := s.masteryService.ListZones(ctx, &mastery.ListZonesInput{ProfileID: input.ProfileID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read zone mastery")
	}

	recordOut, err := s.continuityService.GetRecord(ctx, &continuity.GetRecordInput{ProfileID: input.ProfileID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read continuity record")
	}

	ledger := ledgerOut.Ledger
	record := recordOut.Record

	stats := &progression.PlayerStats{
		TotalXP:         ledger.TotalXP,
		BossesDefeated:  ledger.BossesDefeated,
		PerfectGames:    ledger.PerfectGames,
		CurrentStreak:   record.CurrentStreak,
		LongestStreak:   record.LongestStreak,
		OverallMastery:  overallMastery(zonesOut.Zones),
		CompletedZones:  completedZones(zonesOut.Zones),
		SubjectsStarted: subjectsStarted(ledger),
	}

	return &SnapshotOutput{Stats: stats}, nil
}

// completedZones counts zones at gold.
func completedZones(zones map[string]*progression.ZoneMastery) int {
	n := 0
	for _, z := range zones {
		if z.Mastery == progression.TierGold {
			n++
		}
	}
	return n
}

// overallMastery averages the tier ladder position across attempted
// zones as a 0-100 percentage. Gold zones score 100, silver two thirds,
// bronze one third.
func overallMastery(zones map[string]*progression.ZoneMastery) float64 {
	if len(zones) == 0 {
		return 0
	}

	total := 0.0
	for _, z := range zones {
		total += float64(z.Mastery.Rank()) / float64(progression.TierGold.Rank())
	}
	return total / float64(len(zones)) * 100
}

// subjectsStarted counts subject buckets holding any XP.
func subjectsStarted(ledger *progression.ExperienceLedger) int {
	n := 0
	for _, xp := range ledger.SubjectXP {
		if xp > 0 {
			n++
		}
	}
	return n
}
