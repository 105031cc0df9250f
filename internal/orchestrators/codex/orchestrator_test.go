package codex_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/studyquest/progression/internal/content"
	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/orchestrators/codex"
	codexrepo "github.com/studyquest/progression/internal/repositories/codex"
	codexmock "github.com/studyquest/progression/internal/repositories/codex/mock"
)

const testProfile = "local"

// testCatalogue keeps thresholds small and one requirement per kind so
// each unlock path is easy to hit in isolation.
func testCatalogue() *content.Catalogue {
	return &content.Catalogue{
		Subjects: []string{"maths", "science"},
		Chapters: []progression.Chapter{
			{ID: "ch-1", Ordinal: 1, Title: "One", Requirement: progression.UnlockRequirement{
				Kind: progression.RequirementXP, Threshold: 0,
			}},
			{ID: "ch-2", Ordinal: 2, Title: "Two", Requirement: progression.UnlockRequirement{
				Kind: progression.RequirementXP, Threshold: 500,
			}},
			{ID: "ch-3", Ordinal: 3, Title: "Three", Requirement: progression.UnlockRequirement{
				Kind: progression.RequirementStreak, Threshold: 7,
			}},
			{ID: "ch-4", Ordinal: 4, Title: "Four", Requirement: progression.UnlockRequirement{
				Kind: progression.RequirementAllSubjects,
			}},
		},
		BonusFragments: []progression.BonusFragment{
			{ID: "bf-1", Ordinal: 1, Title: "First", Requirement: progression.UnlockRequirement{
				Kind: progression.RequirementBosses, Threshold: 1,
			}},
			{ID: "bf-2", Ordinal: 2, Title: "Second", Requirement: progression.UnlockRequirement{
				Kind: progression.RequirementMastery, Threshold: 60,
			}},
		},
	}
}

type CodexTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *codexmock.MockRepository
	svc      codex.Service
	ctx      context.Context

	stored *progression.CodexState
}

func (s *CodexTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = codexmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.stored = nil

	svc, err := codex.NewOrchestrator(&codex.Config{
		CodexRepo: s.mockRepo,
		Catalogue: testCatalogue(),
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *CodexTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCodexSuite(t *testing.T) {
	suite.Run(t, new(CodexTestSuite))
}

func (s *CodexTestSuite) expectStatefulRepo() {
	s.mockRepo.EXPECT().
		Get(s.ctx, codexrepo.GetInput{ProfileID: testProfile}).
		DoAndReturn(func(_ context.Context, _ codexrepo.GetInput) (*codexrepo.GetOutput, error) {
			if s.stored == nil {
				return nil, errors.NotFound("codex state not found")
			}
			return &codexrepo.GetOutput{State: s.stored}, nil
		}).
		AnyTimes()

	s.mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input codexrepo.SaveInput) (*codexrepo.SaveOutput, error) {
			s.stored = input.State
			return &codexrepo.SaveOutput{}, nil
		}).
		AnyTimes()
}

func (s *CodexTestSuite) TestRequirementEvaluation() {
	stats := &progression.PlayerStats{
		TotalXP:         500,
		CompletedZones:  2,
		BossesDefeated:  1,
		CurrentStreak:   0,
		LongestStreak:   10,
		OverallMastery:  59.9,
		PerfectGames:    3,
		SubjectsStarted: 1,
	}

	testCases := []struct {
		name string
		req  progression.UnlockRequirement
		met  bool
	}{
		{"xp met exactly at threshold", progression.UnlockRequirement{Kind: progression.RequirementXP, Threshold: 500}, true},
		{"xp one short", progression.UnlockRequirement{Kind: progression.RequirementXP, Threshold: 501}, false},
		{"zones met", progression.UnlockRequirement{Kind: progression.RequirementZones, Threshold: 2}, true},
		{"bosses met", progression.UnlockRequirement{Kind: progression.RequirementBosses, Threshold: 1}, true},
		{"streak uses longest not current", progression.UnlockRequirement{Kind: progression.RequirementStreak, Threshold: 7}, true},
		{"mastery below threshold", progression.UnlockRequirement{Kind: progression.RequirementMastery, Threshold: 60}, false},
		{"perfect met", progression.UnlockRequirement{Kind: progression.RequirementPerfect, Threshold: 3}, true},
		{"all subjects not yet started", progression.UnlockRequirement{Kind: progression.RequirementAllSubjects}, false},
		{"unknown kind fails closed", progression.UnlockRequirement{Kind: "levels", Threshold: 1}, false},
		{"zero kind fails closed", progression.UnlockRequirement{Threshold: 0}, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.met, s.svc.IsRequirementMet(tc.req, stats))
		})
	}
}

func (s *CodexTestSuite) TestXPThresholdEdge() {
	req := progression.UnlockRequirement{Kind: progression.RequirementXP, Threshold: 500}

	s.False(s.svc.IsRequirementMet(req, &progression.PlayerStats{TotalXP: 499}))
	s.True(s.svc.IsRequirementMet(req, &progression.PlayerStats{TotalXP: 500}))
}

func (s *CodexTestSuite) TestUnlockedListsPreserveCatalogueOrder() {
	stats := &progression.PlayerStats{TotalXP: 600, LongestStreak: 7}

	chapters := s.svc.GetUnlockedChapters(stats)
	s.Require().Len(chapters, 3)
	s.Equal("ch-1", chapters[0].ID)
	s.Equal("ch-2", chapters[1].ID)
	s.Equal("ch-3", chapters[2].ID)

	s.Empty(s.svc.GetUnlockedBonusFragments(stats))
}

func (s *CodexTestSuite) TestNextLockedChapter() {
	next := s.svc.GetNextLockedChapter(&progression.PlayerStats{TotalXP: 100})
	s.Require().NotNil(next)
	s.Equal("ch-2", next.ID)

	all := &progression.PlayerStats{TotalXP: 1000, LongestStreak: 30, SubjectsStarted: 2}
	s.Nil(s.svc.GetNextLockedChapter(all))
}

func (s *CodexTestSuite) TestMarkChapterReadIsIdempotent() {
	s.expectStatefulRepo()

	for i := 0; i < 2; i++ {
		output, err := s.svc.MarkChapterRead(s.ctx, &codex.MarkChapterReadInput{
			ProfileID: testProfile,
			ChapterID: "ch-1",
		})
		s.Require().NoError(err)
		s.Equal([]string{"ch-1"}, output.State.ReadChapterIDs)
		s.Equal("ch-1", output.State.LastViewedChapterID)
	}

	_, err := s.svc.MarkChapterRead(s.ctx, &codex.MarkChapterReadInput{
		ProfileID: testProfile,
		ChapterID: "ch-9",
	})
	s.True(errors.IsNotFound(err))
}

func (s *CodexTestSuite) TestReadBeforeUnlockDoesNotCount() {
	s.expectStatefulRepo()

	// Reading a still-locked chapter is allowed, but progress only
	// counts reads of unlocked items.
	_, err := s.svc.MarkChapterRead(s.ctx, &codex.MarkChapterReadInput{
		ProfileID: testProfile,
		ChapterID: "ch-2",
	})
	s.Require().NoError(err)

	output, err := s.svc.GetProgress(s.ctx, &codex.GetProgressInput{
		ProfileID: testProfile,
		Stats:     &progression.PlayerStats{TotalXP: 100},
	})
	s.Require().NoError(err)

	s.Equal(1, output.Progress.ChaptersUnlocked)
	s.Equal(4, output.Progress.ChaptersTotal)
	s.Equal(0, output.Progress.ChaptersRead)

	// Once the threshold is met the earlier read counts.
	output, err = s.svc.GetProgress(s.ctx, &codex.GetProgressInput{
		ProfileID: testProfile,
		Stats:     &progression.PlayerStats{TotalXP: 500},
	})
	s.Require().NoError(err)
	s.Equal(2, output.Progress.ChaptersUnlocked)
	s.Equal(1, output.Progress.ChaptersRead)
}

func (s *CodexTestSuite) TestCheckForNewUnlocksReportsOnce() {
	s.expectStatefulRepo()

	output, err := s.svc.CheckForNewUnlocks(s.ctx, &codex.CheckForNewUnlocksInput{
		ProfileID: testProfile,
		Stats:     &progression.PlayerStats{TotalXP: 100, BossesDefeated: 1},
	})
	s.Require().NoError(err)
	s.Require().Len(output.NewChapters, 1)
	s.Equal("ch-1", output.NewChapters[0].ID)
	s.Require().Len(output.NewBonus, 1)
	s.Equal("bf-1", output.NewBonus[0].ID)

	// Re-checking with the same stats reports nothing.
	output, err = s.svc.CheckForNewUnlocks(s.ctx, &codex.CheckForNewUnlocksInput{
		ProfileID: testProfile,
		Stats:     &progression.PlayerStats{TotalXP: 100, BossesDefeated: 1},
	})
	s.Require().NoError(err)
	s.Empty(output.NewChapters)
	s.Empty(output.NewBonus)

	// Better stats report only the delta.
	output, err = s.svc.CheckForNewUnlocks(s.ctx, &codex.CheckForNewUnlocksInput{
		ProfileID: testProfile,
		Stats:     &progression.PlayerStats{TotalXP: 600, BossesDefeated: 1},
	})
	s.Require().NoError(err)
	s.Require().Len(output.NewChapters, 1)
	s.Equal("ch-2", output.NewChapters[0].ID)
	s.Empty(output.NewBonus)
}

func (s *CodexTestSuite) TestValidation() {
	_, err := s.svc.GetProgress(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.CheckForNewUnlocks(s.ctx, &codex.CheckForNewUnlocksInput{})
	s.True(errors.IsInvalidArgument(err))

	s.False(s.svc.IsRequirementMet(progression.UnlockRequirement{
		Kind: progression.RequirementXP,
	}, nil))
}
