//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"powercup-backend/internal/database/models"
	"powercup-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MatchRepositoryTestSuite tests the MatchRepository
type MatchRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *MatchRepository
	teams         *TeamRepository
	fixtures      *fixtures
	ctx           context.Context
}

func (suite *MatchRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewMatchRepository(suite.baseTestSuite.DB)
	suite.teams = NewTeamRepository(suite.baseTestSuite.DB)
	suite.fixtures = newFixtures(suite.baseTestSuite, &suite.Suite)
	suite.ctx = context.Background()
}

func (suite *MatchRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *MatchRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *MatchRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *MatchRepositoryTestSuite) twoTeams() (*models.Team, *models.Team) {
	return suite.fixtures.team(suite.fixtures.user().ID), suite.fixtures.team(suite.fixtures.user().ID)
}

func (suite *MatchRepositoryTestSuite) TestCreateAndGet() {
	first, second := suite.twoTeams()
	match := suite.fixtures.factories.Match.Create(first.ID, second.ID)

	suite.Require().NoError(suite.repo.Create(suite.ctx, match))
	suite.NotZero(match.ID)

	found, err := suite.repo.GetByID(suite.ctx, match.ID)
	suite.NoError(err)
	suite.Equal(models.MatchStatusPreparing, found.Status)
	suite.Require().Len(found.Members, 2)
	suite.True(found.HasTeam(first.ID))
	suite.True(found.HasTeam(second.ID))
	suite.Require().Len(found.Members[0].Team.Members, 1)
	suite.Nil(found.Winner)
}

func (suite *MatchRepositoryTestSuite) TestCreateWithUnknownTeamRollsBack() {
	first, _ := suite.twoTeams()
	match := suite.fixtures.factories.Match.Create(first.ID, 9999)

	err := suite.repo.Create(suite.ctx, match)

	suite.ErrorIs(err, gorm.ErrForeignKeyViolated)
	matches, err := suite.repo.GetAll(suite.ctx)
	suite.NoError(err)
	suite.Empty(matches)
}

func (suite *MatchRepositoryTestSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(suite.ctx, 9999)

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *MatchRepositoryTestSuite) TestUpdateStatusLifecycle() {
	first, second := suite.twoTeams()
	match := suite.fixtures.factories.Match.Create(first.ID, second.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, match))

	started := time.Now().UTC()
	suite.NoError(suite.repo.UpdateStatus(suite.ctx, match.ID, models.MatchStatusPreparing, map[string]interface{}{
		"status":     models.MatchStatusInProgress,
		"started_at": started,
	}))

	err := suite.repo.UpdateStatus(suite.ctx, match.ID, models.MatchStatusPreparing, map[string]interface{}{
		"status": models.MatchStatusCancelled,
	})
	suite.ErrorIs(err, ErrConcurrentUpdate)

	suite.NoError(suite.repo.UpdateStatus(suite.ctx, match.ID, models.MatchStatusInProgress, map[string]interface{}{
		"status":         models.MatchStatusFinished,
		"team_winner_id": first.ID,
		"finished_at":    started.Add(time.Hour),
	}))

	found, err := suite.repo.GetByID(suite.ctx, match.ID)
	suite.NoError(err)
	suite.Equal(models.MatchStatusFinished, found.Status)
	suite.NotNil(found.StartedAt)
	suite.NotNil(found.FinishedAt)
	suite.Require().NotNil(found.Winner)
	suite.Equal(first.ID, found.Winner.ID)
}

func (suite *MatchRepositoryTestSuite) TestDeletingWinnerKeepsMatch() {
	first, second := suite.twoTeams()
	match := suite.fixtures.factories.Match.WithStatus(first.ID, second.ID, models.MatchStatusInProgress)
	suite.Require().NoError(suite.repo.Create(suite.ctx, match))
	suite.Require().NoError(suite.repo.UpdateStatus(suite.ctx, match.ID, models.MatchStatusInProgress, map[string]interface{}{
		"status":         models.MatchStatusFinished,
		"team_winner_id": first.ID,
	}))

	suite.NoError(suite.teams.Delete(suite.ctx, first.ID))

	found, err := suite.repo.GetByID(suite.ctx, match.ID)
	suite.NoError(err)
	suite.Nil(found.WinnerTeamID)
	suite.Len(found.Members, 1)
}

func TestMatchRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MatchRepositoryTestSuite))
}
