// Package codex evaluates content unlocks against a caller-supplied
// stats snapshot and tracks which unlocked items have been read.
// Unlock status is never persisted; it is recomputed on every query
// from the catalogue and the snapshot.
package codex

//go:generate mockgen -destination=mock/mock_service.go -package=codexmock github.com/studyquest/progression/internal/orchestrators/codex Service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/studyquest/progression/internal/content"
	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	codexrepo "github.com/studyquest/progression/internal/repositories/codex"
)

// Service defines the interface for codex unlock and read-tracking
// operations.
type Service interface {
	// IsRequirementMet evaluates one requirement against the snapshot.
	// Unknown requirement kinds are unmet.
	IsRequirementMet(req progression.UnlockRequirement, stats *progression.PlayerStats) bool

	// GetUnlockedChapters returns the unlocked chapters in catalogue order.
	GetUnlockedChapters(stats *progression.PlayerStats) []progression.Chapter

	// GetUnlockedBonusFragments returns the unlocked bonus fragments in
	// catalogue order.
	GetUnlockedBonusFragments(stats *progression.PlayerStats) []progression.BonusFragment

	// GetNextLockedChapter returns the first still-locked chapter, or
	// nil when everything is unlocked.
	GetNextLockedChapter(stats *progression.PlayerStats) *progression.Chapter

	// GetProgress returns aggregate unlock and read counts. Reads only
	// count toward items that are currently unlocked.
	GetProgress(ctx context.Context, input *GetProgressInput) (*GetProgressOutput, error)

	// MarkChapterRead records a chapter as read, idempotently, and
	// updates the last-viewed pointer.
	MarkChapterRead(ctx context.Context, input *MarkChapterReadInput) (*MarkChapterReadOutput, error)

	// MarkBonusRead records a bonus fragment as read, idempotently, and
	// updates the last-viewed pointer.
	MarkBonusRead(ctx context.Context, input *MarkBonusReadInput) (*MarkBonusReadOutput, error)

	// CheckForNewUnlocks returns items unlocked since the previous
	// check and remembers them, so each unlock is reported exactly once.
	CheckForNewUnlocks(ctx context.Context, input *CheckForNewUnlocksInput) (*CheckForNewUnlocksOutput, error)
}

// Config holds the dependencies for the codex orchestrator.
type Config struct {
	CodexRepo codexrepo.Repository
	Catalogue *content.Catalogue
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CodexRepo == nil {
		vb.RequiredField("CodexRepo")
	}
	if c.Catalogue == nil {
		vb.RequiredField("Catalogue")
	}

	return vb.Build()
}

type orchestrator struct {
	codexRepo codexrepo.Repository
	catalogue *content.Catalogue
}

// NewOrchestrator creates a codex orchestrator with the provided
// dependencies.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		codexRepo: cfg.CodexRepo,
		catalogue: cfg.Catalogue,
	}, nil
}

func (o *orchestrator) IsRequirementMet(req progression.UnlockRequirement, stats *progression.PlayerStats) bool {
	if stats == nil {
		return false
	}

	switch req.Kind {
	case progression.RequirementXP:
		return float64(stats.TotalXP) >= req.Threshold
	case progression.RequirementZones:
		return float64(stats.CompletedZones) >= req.Threshold
	case progression.RequirementBosses:
		return float64(stats.BossesDefeated) >= req.Threshold
	case progression.RequirementStreak:
		// Measured against the longest streak ever, so an unlock
		// survives the current streak lapsing.
		return float64(stats.LongestStreak) >= req.Threshold
	case progression.RequirementMastery:
		return stats.OverallMastery >= req.Threshold
	case progression.RequirementPerfect:
		return float64(stats.PerfectGames) >= req.Threshold
	case progression.RequirementAllSubjects:
		return stats.SubjectsStarted >= len(o.catalogue.Subjects)
	default:
		// Unknown kinds stay locked.
		return false
	}
}

func (o *orchestrator) GetUnlockedChapters(stats *progression.PlayerStats) []progression.Chapter {
	var unlocked []progression.Chapter
	for _, ch := range o.catalogue.Chapters {
		if o.IsRequirementMet(ch.Requirement, stats) {
			unlocked = append(unlocked, ch)
		}
	}
	return unlocked
}

func (o *orchestrator) GetUnlockedBonusFragments(stats *progression.PlayerStats) []progression.BonusFragment {
	var unlocked []progression.BonusFragment
	for _, b := range o.catalogue.BonusFragments {
		if o.IsRequirementMet(b.Requirement, stats) {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

func (o *orchestrator) GetNextLockedChapter(stats *progression.PlayerStats) *progression.Chapter {
	for i := range o.catalogue.Chapters {
		if !o.IsRequirementMet(o.catalogue.Chapters[i].Requirement, stats) {
			ch := o.catalogue.Chapters[i]
			return &ch
		}
	}
	return nil
}

func (o *orchestrator) GetProgress(ctx context.Context, input *GetProgressInput) (*GetProgressOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	state, err := o.loadState(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	progress := progression.CodexProgress{
		ChaptersTotal: len(o.catalogue.Chapters),
		BonusTotal:    len(o.catalogue.BonusFragments),
	}

	for _, ch := range o.catalogue.Chapters {
		if !o.IsRequirementMet(ch.Requirement, input.Stats) {
			continue
		}
		progress.ChaptersUnlocked++
		if slices.Contains(state.ReadChapterIDs, ch.ID) {
			progress.ChaptersRead++
		}
	}
	for _, b := range o.catalogue.BonusFragments {
		if !o.IsRequirementMet(b.Requirement, input.Stats) {
			continue
		}
		progress.BonusUnlocked++
		if slices.Contains(state.ReadBonusIDs, b.ID) {
			progress.BonusRead++
		}
	}

	return &GetProgressOutput{Progress: progress}, nil
}

func (o *orchestrator) MarkChapterRead(ctx context.Context, input *MarkChapterReadInput) (*MarkChapterReadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}
	if !o.hasChapter(input.ChapterID) {
		return nil, errors.NotFoundf("chapter %q not in catalogue", input.ChapterID)
	}

	state, err := o.loadState(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	changed := state.LastViewedChapterID != input.ChapterID
	if !slices.Contains(state.ReadChapterIDs, input.ChapterID) {
		state.ReadChapterIDs = append(state.ReadChapterIDs, input.ChapterID)
		changed = true
	}
	state.LastViewedChapterID = input.ChapterID

	if changed {
		if err := o.saveState(ctx, input.ProfileID, state); err != nil {
			return nil, err
		}
	}

	return &MarkChapterReadOutput{State: state}, nil
}

func (o *orchestrator) MarkBonusRead(ctx context.Context, input *MarkBonusReadInput) (*MarkBonusReadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}
	if !o.hasBonus(input.BonusID) {
		return nil, errors.NotFoundf("bonus fragment %q not in catalogue", input.BonusID)
	}

	state, err := o.loadState(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	changed := state.LastViewedBonusID != input.BonusID
	if !slices.Contains(state.ReadBonusIDs, input.BonusID) {
		state.ReadBonusIDs = append(state.ReadBonusIDs, input.BonusID)
		changed = true
	}
	state.LastViewedBonusID = input.BonusID

	if changed {
		if err := o.saveState(ctx, input.ProfileID, state); err != nil {
			return nil, err
		}
	}

	return &MarkBonusReadOutput{State: state}, nil
}

func (o *orchestrator) CheckForNewUnlocks(ctx context.Context, input *CheckForNewUnlocksInput) (*CheckForNewUnlocksOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument("profile ID cannot be empty")
	}

	state, err := o.loadState(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	output := &CheckForNewUnlocksOutput{}

	for _, ch := range o.GetUnlockedChapters(input.Stats) {
		if slices.Contains(state.SeenChapterIDs, ch.ID) {
			continue
		}
		state.SeenChapterIDs = append(state.SeenChapterIDs, ch.ID)
		output.NewChapters = append(output.NewChapters, ch)
	}
	for _, b := range o.GetUnlockedBonusFragments(input.Stats) {
		if slices.Contains(state.SeenBonusIDs, b.ID) {
			continue
		}
		state.SeenBonusIDs = append(state.SeenBonusIDs, b.ID)
		output.NewBonus = append(output.NewBonus, b)
	}

	if len(output.NewChapters) == 0 && len(output.NewBonus) == 0 {
		return output, nil
	}

	if err := o.saveState(ctx, input.ProfileID, state); err != nil {
		return nil, err
	}

	slog.Info("new codex unlocks",
		"profile_id", input.ProfileID,
		"chapters", len(output.NewChapters),
		"bonus", len(output.NewBonus),
	)

	return output, nil
}

func (o *orchestrator) hasChapter(id string) bool {
	for _, ch := range o.catalogue.Chapters {
		if ch.ID == id {
			return true
		}
	}
	return false
}

func (o *orchestrator) hasBonus(id string) bool {
	for _, b := range o.catalogue.BonusFragments {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (o *orchestrator) loadState(ctx context.Context, profileID string) (*progression.CodexState, error) {
	output, err := o.codexRepo.Get(ctx, codexrepo.GetInput{ProfileID: profileID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &progression.CodexState{}, nil
		}
		return nil, errors.Wrap(err, "failed to load codex state")
	}
	if output.State == nil {
		return &progression.CodexState{}, nil
	}
	return output.State, nil
}

func (o *orchestrator) saveState(ctx context.Context, profileID string, state *progression.CodexState) error {
	if _, err := o.codexRepo.Save(ctx, codexrepo.SaveInput{ProfileID: profileID, State: state}); err != nil {
		return errors.Wrap(err, "failed to persist codex state")
	}
	return nil
}
