package mastery_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/orchestrators/mastery"
	"github.com/studyquest/progression/internal/pkg/clock"
	masteryrepo "github.com/studyquest/progression/internal/repositories/mastery"
	masterymock "github.com/studyquest/progression/internal/repositories/mastery/mock"
)

const (
	testProfile = "local"
	testZone    = "maths-algebra-1"
)

type MasteryTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *masterymock.MockRepository
	clock    *clock.Fake
	svc      mastery.Service
	ctx      context.Context

	stored map[string]*progression.ZoneMastery
}

func (s *MasteryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = masterymock.NewMockRepository(s.ctrl)
	s.clock = clock.NewFake(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))
	s.ctx = context.Background()
	s.stored = nil

	svc, err := mastery.NewOrchestrator(&mastery.Config{
		MasteryRepo: s.mockRepo,
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *MasteryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestMasterySuite(t *testing.T) {
	suite.Run(t, new(MasteryTestSuite))
}

func (s *MasteryTestSuite) expectStatefulRepo() {
	s.mockRepo.EXPECT().
		Get(s.ctx, masteryrepo.GetInput{ProfileID: testProfile}).
		DoAndReturn(func(_ context.Context, _ masteryrepo.GetInput) (*masteryrepo.GetOutput, error) {
			if s.stored == nil {
				return nil, errors.NotFound("zone mastery not found")
			}
			return &masteryrepo.GetOutput{Zones: s.stored}, nil
		}).
		AnyTimes()

	s.mockRepo.EXPECT().
		Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input masteryrepo.SaveInput) (*masteryrepo.SaveOutput, error) {
			s.stored = input.Zones
			return &masteryrepo.SaveOutput{}, nil
		}).
		AnyTimes()
}

func (s *MasteryTestSuite) recordCorrect(n int) {
	for i := 0; i < n; i++ {
		_, err := s.svc.RecordAttempt(s.ctx, &mastery.RecordAttemptInput{
			ProfileID: testProfile,
			ZoneID:    testZone,
			Correct:   true,
			Combo:     i + 1,
		})
		s.Require().NoError(err)
	}
}

func (s *MasteryTestSuite) TestTierLadder() {
	testCases := []struct {
		name      string
		attempted int
		correct   int
		expected  progression.Tier
	}{
		{"no attempts", 0, 0, progression.TierNone},
		{"too few attempts", 4, 4, progression.TierNone},
		{"bronze at volume and accuracy", 5, 3, progression.TierBronze},
		{"bronze denied below accuracy", 5, 2, progression.TierNone},
		{"silver at volume and accuracy", 10, 8, progression.TierSilver},
		{"silver volume but bronze accuracy", 10, 7, progression.TierBronze},
		{"gold at volume and accuracy", 20, 18, progression.TierGold},
		{"gold volume but silver accuracy", 20, 17, progression.TierSilver},
		{"gold volume but bronze accuracy", 20, 13, progression.TierBronze},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, mastery.TierFor(tc.attempted, tc.correct))
		})
	}
}

func (s *MasteryTestSuite) TestPerfectRunReachesTiersInOrder() {
	s.expectStatefulRepo()

	s.recordCorrect(4)
	s.Equal(progression.TierNone, s.stored[testZone].Mastery)

	s.recordCorrect(1) // 5th attempt
	s.Equal(progression.TierBronze, s.stored[testZone].Mastery)

	s.recordCorrect(4)
	s.Equal(progression.TierBronze, s.stored[testZone].Mastery)

	s.recordCorrect(1) // 10th attempt
	s.Equal(progression.TierSilver, s.stored[testZone].Mastery)

	s.recordCorrect(9)
	s.Equal(progression.TierSilver, s.stored[testZone].Mastery)

	s.recordCorrect(1) // 20th attempt
	s.Equal(progression.TierGold, s.stored[testZone].Mastery)
	s.Equal(progression.TierGold, s.stored[testZone].BestMastery)
}

func (s *MasteryTestSuite) TestTierCanRegressButBestDoesNot() {
	s.expectStatefulRepo()

	// 20/20 correct: gold.
	s.recordCorrect(20)
	s.Equal(progression.TierGold, s.stored[testZone].Mastery)

	// A cold streak of wrong answers drags lifetime accuracy below 90%.
	var output *mastery.RecordAttemptOutput
	for i := 0; i < 3; i++ {
		var err error
		output, err = s.svc.RecordAttempt(s.ctx, &mastery.RecordAttemptInput{
			ProfileID: testProfile,
			ZoneID:    testZone,
			Correct:   false,
		})
		s.Require().NoError(err)
	}

	// 20/23 is below gold accuracy; tier regresses, best does not.
	s.Equal(progression.TierSilver, output.Zone.Mastery)
	s.Equal(progression.TierGold, output.Zone.BestMastery)
	s.True(output.TierChanged)
}

func (s *MasteryTestSuite) TestBestComboAndTimestamps() {
	s.expectStatefulRepo()

	_, err := s.svc.RecordAttempt(s.ctx, &mastery.RecordAttemptInput{
		ProfileID: testProfile, ZoneID: testZone, Correct: true, Combo: 4,
	})
	s.Require().NoError(err)
	_, err = s.svc.RecordAttempt(s.ctx, &mastery.RecordAttemptInput{
		ProfileID: testProfile, ZoneID: testZone, Correct: false, Combo: 2,
	})
	s.Require().NoError(err)

	zone := s.stored[testZone]
	s.Equal(4, zone.BestCombo)
	s.Equal(s.clock.Now().Unix(), zone.LastAttemptAt)
	s.Equal(2, zone.QuestionsAttempted)
	s.Equal(1, zone.QuestionsCorrect)
}

func (s *MasteryTestSuite) TestGetZoneDefaultsToNone() {
	s.mockRepo.EXPECT().
		Get(s.ctx, masteryrepo.GetInput{ProfileID: testProfile}).
		Return(nil, errors.NotFound("zone mastery not found"))

	output, err := s.svc.GetZone(s.ctx, &mastery.GetZoneInput{ProfileID: testProfile, ZoneID: "never-seen"})
	s.Require().NoError(err)

	s.Equal(progression.TierNone, output.Zone.Mastery)
	s.Equal(0, output.Zone.QuestionsAttempted)
}

func (s *MasteryTestSuite) TestValidation() {
	_, err := s.svc.RecordAttempt(s.ctx, &mastery.RecordAttemptInput{ProfileID: testProfile})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.RecordAttempt(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}
