// Package mastery implements per-zone attempt tracking and the mastery tier
// ladder.
package mastery

//go:generate mockgen -destination=mock/mock_service.go -package=masterymock github.com/studyquest/progression/internal/orchestrators/mastery Service

import (
	"context"
	"log/slog"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/pkg/clock"
	masteryrepo "github.com/studyquest/progression/internal/repositories/mastery"
)

// Tier ladder thresholds. A tier requires both the attempt volume and the
// lifetime accuracy; the highest satisfied tier wins.
const (
	bronzeAttempts = 5
	bronzeAccuracy = 0.60
	silverAttempts = 10
	silverAccuracy = 0.80
	goldAttempts   = 20
	goldAccuracy   = 0.90
)

// Service defines the interface for mastery tracking operations.
type Service interface {
	// RecordAttempt records one graded answer, creating the zone record
	// on first use and recomputing the tier ladder.
	RecordAttempt(ctx context.Context, input *RecordAttemptInput) (*RecordAttemptOutput, error)

	// GetZone returns a zone record; unknown zones read as tier none.
	GetZone(ctx context.Context, input *GetZoneInput) (*GetZoneOutput, error)

	// ListZones returns every known zone record for the profile.
	ListZones(ctx context.Context, input *ListZonesInput) (*ListZonesOutput, error)
}

// Config holds the dependencies for the mastery orchestrator.
type Config struct {
	MasteryRepo masteryrepo.Repository
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.MasteryRepo == nil {
		vb.RequiredField("MasteryRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	masteryRepo masteryrepo.Repository
	clock       clock.Clock
}

// NewOrchestrator creates a mastery orchestrator with the provided
// dependencies.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		masteryRepo: cfg.MasteryRepo,
		clock:       cfg.Clock,
	}, nil
}

// TierFor recomputes the mastery tier from lifetime counters, checking the
// ladder top-down so the highest satisfied tier wins.
func TierFor(attempted, correct int) progression.Tier {
	if attempted == 0 {
		return progression.TierNone
	}

	accuracy := float64(correct) / float64(attempted)
	switch {
	case attempted >= goldAttempts && accuracy >= goldAccuracy:
		return progression.TierGold
	case attempted >= silverAttempts && accuracy >= silverAccuracy:
		return progression.TierSilver
	case attempted >= bronzeAttempts && accuracy >= bronzeAccuracy:
		return progression.TierBronze
	default:
		return progression.TierNone
	}
}

// RecordAttempt records one graded answer against a zone.
func (o *orchestrator) RecordAttempt(ctx context.Context, input *RecordAttemptInput) (*RecordAttemptOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}
	if input.ZoneID == "" {
		return nil, errors.InvalidArgument("zone ID cannot be empty")
	}

	zones, err := o.loadZones(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	zone, ok := zones[input.ZoneID]
	if !ok {
		zone = &progression.ZoneMastery{
			ZoneID:      input.ZoneID,
			Mastery:     progression.TierNone,
			BestMastery: progression.TierNone,
		}
		zones[input.ZoneID] = zone
	}

	previousTier := zone.Mastery

	zone.QuestionsAttempted++
	if input.Correct {
		zone.QuestionsCorrect++
	}
	zone.Mastery = TierFor(zone.QuestionsAttempted, zone.QuestionsCorrect)
	if zone.Mastery.Rank() > zone.BestMastery.Rank() {
		zone.BestMastery = zone.Mastery
	}
	if input.Combo > zone.BestCombo {
		zone.BestCombo = input.Combo
	}
	zone.LastAttemptAt = o.clock.Now().Unix()

	if _, err := o.masteryRepo.Save(ctx, masteryrepo.SaveInput{ProfileID: input.ProfileID, Zones: zones}); err != nil {
		return nil, errors.Wrap(err, "failed to persist zone mastery")
	}

	tierChanged := zone.Mastery != previousTier
	if tierChanged {
		slog.Info("mastery tier changed",
			"profile_id", input.ProfileID,
			"zone_id", input.ZoneID,
			"from", previousTier,
			"to", zone.Mastery,
		)
	}

	return &RecordAttemptOutput{Zone: zone, TierChanged: tierChanged}, nil
}

// GetZone returns a zone record, defaulting to a fresh tier-none record.
func (o *orchestrator) GetZone(ctx context.Context, input *GetZoneInput) (*GetZoneOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}
	if input.ZoneID == "" {
		return nil, errors.InvalidArgument("zone ID cannot be empty")
	}

	zones, err := o.loadZones(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	if zone, ok := zones[input.ZoneID]; ok {
		return &GetZoneOutput{Zone: zone}, nil
	}

	return &GetZoneOutput{Zone: &progression.ZoneMastery{
		ZoneID:      input.ZoneID,
		Mastery:     progression.TierNone,
		BestMastery: progression.TierNone,
	}}, nil
}

// ListZones returns every known zone record for the profile.
func (o *orchestrator) ListZones(ctx context.Context, input *ListZonesInput) (*ListZonesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	zones, err := o.loadZones(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	return &ListZonesOutput{Zones: zones}, nil
}

func (o *orchestrator) loadZones(ctx context.Context, profileID string) (map[string]*progression.ZoneMastery, error) {
	output, err := o.masteryRepo.Get(ctx, masteryrepo.GetInput{ProfileID: profileID})
	if err != nil {
		if errors.IsNotFound(err) {
			return make(map[string]*progression.ZoneMastery), nil
		}
		return nil, errors.Wrap(err, "failed to load zone mastery")
	}
	if output.Zones == nil {
		return make(map[string]*progression.ZoneMastery), nil
	}
	return output.Zones, nil
}
