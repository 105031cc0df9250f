package continuity_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	"github.com/studyquest/progression/internal/repositories/continuity"
	"github.com/studyquest/progression/internal/testutils"
)

const testContinuityKey = "progression:v1:local:continuity"

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	repo    continuity.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClientWithSetup(s.T(), func(mr *miniredis.Miniredis) {
		s.mr = mr
	})
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := continuity.NewRedisRepository(&continuity.Config{
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

func (s *RedisRepositoryTestSuite) TestGetMissingReturnsNotFound() {
	_, err := s.repo.Get(s.ctx, continuity.GetInput{ProfileID: "local"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveThenGetPreservesShields() {
	saved := &progression.ContinuityRecord{
		CurrentStreak:    12,
		LongestStreak:    30,
		LastActivityDate: "2026-08-29",
		Shields: []progression.Shield{
			{ID: "shield_1", Used: true, EarnedAt: 1690000000},
			{ID: "shield_2", Used: false, EarnedAt: 1695000000},
		},
		MilestonesReached: []int{3, 7},
		FlameIntensity:    progression.FlameHot,
	}

	_, err := s.repo.Save(s.ctx, continuity.SaveInput{ProfileID: "local", Record: saved})
	s.Require().NoError(err)

	output, err := s.repo.Get(s.ctx, continuity.GetInput{ProfileID: "local"})
	s.Require().NoError(err)
	s.Equal(saved, output.Record)
	s.Equal(1, output.Record.UnusedShields())
	s.True(output.Record.HasMilestone(7))
	s.False(output.Record.HasMilestone(14))
}

func (s *RedisRepositoryTestSuite) TestCorruptedBlobIsDataLoss() {
	s.mr.Set(testContinuityKey, `{"version":1,"record":`)

	_, err := s.repo.Get(s.ctx, continuity.GetInput{ProfileID: "local"})
	s.True(errors.IsDataLoss(err))
}

func (s *RedisRepositoryTestSuite) TestFutureVersionIsDataLoss() {
	s.mr.Set(testContinuityKey, `{"version":2,"record":{}}`)

	_, err := s.repo.Get(s.ctx, continuity.GetInput{ProfileID: "local"})
	s.True(errors.IsDataLoss(err))
}

func (s *RedisRepositoryTestSuite) TestInputValidation() {
	_, err := s.repo.Get(s.ctx, continuity.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, continuity.SaveInput{ProfileID: "local"})
	s.True(errors.IsInvalidArgument(err))
}
