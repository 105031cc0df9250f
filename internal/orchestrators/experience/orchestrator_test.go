package experience_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/orchestrators/experience"
	"github.com/studyquest/progression/internal/pkg/clock"
	"github.com/studyquest/progression/internal/repositories/ledger"
	ledgermock "github.com/studyquest/progression/internal/repositories/ledger/mock"
)

const testProfile = "local"

type ExperienceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *ledgermock.MockRepository
	clock    *clock.Fake
	svc      experience.Service
	ctx      context.Context

	// stored backs the mock repo so sequences of awards accumulate.
	stored *progression.ExperienceLedger
}

func (s *ExperienceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = ledgermock.NewMockRepository(s.ctrl)
	s.clock = clock.NewFake(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))
	s.ctx = context.Background()
	s.stored = nil

	svc, err := experience.NewOrchestrator(&experience.Config{
		LedgerRepo: s.mockRepo,
		Clock:      s.clock,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ExperienceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExperienceSuite(t *testing.T) {
	suite.Run(t, new(ExperienceTestSuite))
}

// expectStatefulRepo wires Get/Save through s.stored for any number of calls.
func (s *ExperienceTestSuite) expectStatefulRepo() {
	s.mockRepo.EXPECT().
		Get(s.ctx, ledger.GetInput{ProfileID: testProfile}).
		DoAndReturn(func(_ context.Context, _ ledger.GetInput) (*ledger.GetOutput, error) {
			if s.stored == nil {
				return nil, errors.NotFound("experience ledger not found")
			}
			return &ledger.GetOutput{Ledger: s.stored}, nil
		}).
		AnyTimes()

	s.mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input ledger.SaveInput) (*ledger.SaveOutput, error) {
			s.stored = input.Ledger
			return &ledger.SaveOutput{}, nil
		}).
		AnyTimes()
}

func (s *ExperienceTestSuite) TestCurveConstants() {
	// floor(100 * 1.15^(level-1)) under float64 semantics.
	s.Equal(100, experience.XPToNextLevel(1))
	s.Equal(114, experience.XPToNextLevel(2))
	s.Equal(132, experience.XPToNextLevel(3))
	s.Equal(266, experience.XPToNextLevel(8))
}

func (s *ExperienceTestSuite) TestAddXPSingleLevelUp() {
	s.expectStatefulRepo()

	output, err := s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: 120})
	s.Require().NoError(err)

	s.True(output.LeveledUp)
	s.Equal(2, output.NewLevel)
	s.Equal(120, output.Ledger.TotalXP)
	s.Equal(20, output.Ledger.CurrentLevelXP)
	s.Equal(114, output.Ledger.XPToNextLevel)
	s.Less(output.Ledger.CurrentLevelXP, output.Ledger.XPToNextLevel)
}

func (s *ExperienceTestSuite) TestAddXPMultiLevelJump() {
	s.expectStatefulRepo()

	// 100 + 114 = 214 clears levels 1 and 2 exactly; 6 spills into level 3.
	output, err := s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: 220})
	s.Require().NoError(err)

	s.True(output.LeveledUp)
	s.Equal(3, output.NewLevel)
	s.Equal(6, output.Ledger.CurrentLevelXP)
	s.Equal(132, output.Ledger.XPToNextLevel)
}

func (s *ExperienceTestSuite) TestLevelIsPureFunctionOfTotal() {
	s.expectStatefulRepo()

	awards := []int{30, 70, 14, 250, 1, 99}
	total := 0
	for _, amount := range awards {
		_, err := s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: amount})
		s.Require().NoError(err)
		total += amount
	}
	incremental := *s.stored

	s.stored = nil
	output, err := s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: total})
	s.Require().NoError(err)

	s.Equal(output.Ledger.Level, incremental.Level)
	s.Equal(output.Ledger.CurrentLevelXP, incremental.CurrentLevelXP)
	s.Equal(output.Ledger.TotalXP, incremental.TotalXP)
}

func (s *ExperienceTestSuite) TestZeroAmountIsNoOp() {
	// Get only; Save must not be called.
	s.mockRepo.EXPECT().
		Get(s.ctx, ledger.GetInput{ProfileID: testProfile}).
		Return(nil, errors.NotFound("experience ledger not found"))

	output, err := s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: 0})
	s.Require().NoError(err)

	s.False(output.LeveledUp)
	s.Equal(1, output.NewLevel)
	s.Equal(0, output.Ledger.TotalXP)
}

func (s *ExperienceTestSuite) TestNegativeAmountRejected() {
	_, err := s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: -10})

	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ExperienceTestSuite) TestSubjectBucketAccrual() {
	s.expectStatefulRepo()

	_, err := s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: 40, ZoneID: "maths-algebra-1"})
	s.Require().NoError(err)
	_, err = s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: 10, ZoneID: "maths-fractions-2"})
	s.Require().NoError(err)
	_, err = s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: 25, ZoneID: "science-forces-1"})
	s.Require().NoError(err)

	s.Equal(50, s.stored.SubjectXP["maths"])
	s.Equal(25, s.stored.SubjectXP["science"])
}

func (s *ExperienceTestSuite) TestSubjectOf() {
	s.Equal("maths", experience.SubjectOf("maths-algebra-1"))
	s.Equal("history", experience.SubjectOf("history"))
}

func (s *ExperienceTestSuite) TestRecordBattleOutcome() {
	s.expectStatefulRepo()

	output, err := s.svc.RecordBattleOutcome(s.ctx, &experience.RecordBattleOutcomeInput{
		ProfileID: testProfile,
		Results: &progression.BattleResults{
			ZoneID:       "maths-algebra-1",
			Score:        10,
			MaxScore:     10,
			Accuracy:     1.0,
			XPEarned:     180,
			PerfectRound: true,
		},
		BossDefeated: true,
	})
	s.Require().NoError(err)

	s.True(output.LeveledUp)
	s.Equal(1, output.Ledger.PerfectGames)
	s.Equal(1, output.Ledger.BossesDefeated)
	s.Equal(180, output.Ledger.SubjectXP["maths"])
}

func (s *ExperienceTestSuite) TestGetLedgerDefaultsForNewProfile() {
	s.mockRepo.EXPECT().
		Get(s.ctx, ledger.GetInput{ProfileID: testProfile}).
		Return(nil, errors.NotFound("experience ledger not found"))

	output, err := s.svc.GetLedger(s.ctx, &experience.GetLedgerInput{ProfileID: testProfile})
	s.Require().NoError(err)

	s.Equal(1, output.Ledger.Level)
	s.Equal(100, output.Ledger.XPToNextLevel)
	s.Equal(0, output.Ledger.TotalXP)
}

func (s *ExperienceTestSuite) TestRepoErrorsPropagate() {
	s.mockRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err := s.svc.AddXP(s.ctx, &experience.AddXPInput{ProfileID: testProfile, Amount: 10})
	s.Error(err)
	s.True(errors.IsUnavailable(err))
}
