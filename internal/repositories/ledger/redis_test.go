package ledger_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/repositories/ledger"
	"github.com/studyquest/progression/internal/testutils"
)

const testLedgerKey = "progression:v1:local:ledger"

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	repo    ledger.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClientWithSetup(s.T(), func(mr *miniredis.Miniredis) {
		s.mr = mr
	})
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := ledger.NewRedisRepository(&ledger.Config{
		Client:    client,
		Namespace: "v1",
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepositoryValidation() {
	_, err := ledger.NewRedisRepository(&ledger.Config{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = ledger.NewRedisRepository(nil)
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestGetMissingReturnsNotFound() {
	output, err := s.repo.Get(s.ctx, ledger.GetInput{ProfileID: "local"})

	s.Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveThenGet() {
	saved := &progression.ExperienceLedger{
		TotalXP:        1250,
		Level:          8,
		CurrentLevelXP: 42,
		XPToNextLevel:  266,
		SubjectXP:      map[string]int{"maths": 900, "science": 350},
		PerfectGames:   3,
		BossesDefeated: 1,
		UpdatedAt:      1700000000,
	}

	_, err := s.repo.Save(s.ctx, ledger.SaveInput{ProfileID: "local", Ledger: saved})
	s.Require().NoError(err)

	output, err := s.repo.Get(s.ctx, ledger.GetInput{ProfileID: "local"})
	s.Require().NoError(err)
	s.Equal(saved, output.Ledger)
}

func (s *RedisRepositoryTestSuite) TestProfilesAreIsolated() {
	_, err := s.repo.Save(s.ctx, ledger.SaveInput{
		ProfileID: "local",
		Ledger:    &progression.ExperienceLedger{TotalXP: 100, Level: 1},
	})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, ledger.GetInput{ProfileID: "kiosk"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestCorruptedBlobIsDataLoss() {
	s.mr.Set(testLedgerKey, "not json{")

	_, err := s.repo.Get(s.ctx, ledger.GetInput{ProfileID: "local"})
	s.Error(err)
	s.True(errors.IsDataLoss(err))
}

func (s *RedisRepositoryTestSuite) TestFutureVersionIsDataLoss() {
	s.mr.Set(testLedgerKey, `{"version":99,"ledger":{}}`)

	_, err := s.repo.Get(s.ctx, ledger.GetInput{ProfileID: "local"})
	s.Error(err)
	s.True(errors.IsDataLoss(err))
}

func (s *RedisRepositoryTestSuite) TestInputValidation() {
	_, err := s.repo.Get(s.ctx, ledger.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, ledger.SaveInput{ProfileID: "local"})
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "ledger cannot be nil")
}
