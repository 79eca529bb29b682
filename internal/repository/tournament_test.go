//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	"powercup-backend/internal/database/models"
	"powercup-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TournamentRepositoryTestSuite tests the TournamentRepository and GameRepository
type TournamentRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TournamentRepository
	games         *GameRepository
	fixtures      *fixtures
	ctx           context.Context
}

func (suite *TournamentRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewTournamentRepository(suite.baseTestSuite.DB)
	suite.games = NewGameRepository(suite.baseTestSuite.DB)
	suite.fixtures = newFixtures(suite.baseTestSuite, &suite.Suite)
	suite.ctx = context.Background()
}

func (suite *TournamentRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *TournamentRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *TournamentRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TournamentRepositoryTestSuite) TestCreateAndGet() {
	game := suite.fixtures.game()
	tournament := suite.fixtures.tournament(game.ID)

	found, err := suite.repo.GetByID(suite.ctx, tournament.ID)

	suite.NoError(err)
	suite.Equal(tournament.Name, found.Name)
	suite.Equal(models.TournamentStatusPending, found.Status)
	suite.Equal(game.Name, found.Game.Name)
	suite.Empty(found.Members)
}

func (suite *TournamentRepositoryTestSuite) TestCreateWithUnknownGame() {
	tournament := suite.fixtures.factories.Tournament.Create(9999)

	err := suite.repo.Create(suite.ctx, tournament)

	suite.ErrorIs(err, gorm.ErrForeignKeyViolated)
}

func (suite *TournamentRepositoryTestSuite) TestGuardedUpdate() {
	game := suite.fixtures.game()
	tournament := suite.fixtures.tournament(game.ID)

	suite.NoError(suite.repo.Update(suite.ctx, tournament.ID, models.TournamentStatusPending, map[string]interface{}{
		"status": models.TournamentStatusActive,
	}))

	err := suite.repo.Update(suite.ctx, tournament.ID, models.TournamentStatusPending, map[string]interface{}{
		"status": models.TournamentStatusCancelled,
	})
	suite.ErrorIs(err, ErrConcurrentUpdate)

	suite.NoError(suite.repo.Update(suite.ctx, tournament.ID, "", map[string]interface{}{"name": "Renamed Cup"}))
	suite.ErrorIs(suite.repo.Update(suite.ctx, 9999, "", map[string]interface{}{"name": "Nope"}), gorm.ErrRecordNotFound)

	found, err := suite.repo.GetByID(suite.ctx, tournament.ID)
	suite.NoError(err)
	suite.Equal(models.TournamentStatusActive, found.Status)
	suite.Equal("Renamed Cup", found.Name)
}

func (suite *TournamentRepositoryTestSuite) TestMemberLifecycle() {
	game := suite.fixtures.game()
	tournament := suite.fixtures.tournament(game.ID)
	team := suite.fixtures.team(suite.fixtures.user().ID)

	suite.NoError(suite.repo.CreateMember(suite.ctx, &models.TournamentMember{
		TournamentID: tournament.ID, TeamID: team.ID, Status: models.TournamentMemberStatusPending,
	}))
	err := suite.repo.CreateMember(suite.ctx, &models.TournamentMember{
		TournamentID: tournament.ID, TeamID: team.ID, Status: models.TournamentMemberStatusPending,
	})
	suite.ErrorIs(err, gorm.ErrDuplicatedKey)

	suite.NoError(suite.repo.UpdateMemberStatus(suite.ctx, tournament.ID, team.ID, models.TournamentMemberStatusAccepted))
	member, err := suite.repo.GetMember(suite.ctx, tournament.ID, team.ID)
	suite.NoError(err)
	suite.Equal(models.TournamentMemberStatusAccepted, member.Status)

	found, err := suite.repo.GetByID(suite.ctx, tournament.ID)
	suite.NoError(err)
	suite.Require().Len(found.Members, 1)
	suite.Equal(team.Name, found.Members[0].Team.Name)

	suite.ErrorIs(suite.repo.UpdateMemberStatus(suite.ctx, tournament.ID, 9999, models.TournamentMemberStatusRejected), gorm.ErrRecordNotFound)
}

func (suite *TournamentRepositoryTestSuite) TestGameUniquenessIgnoresCase() {
	game := suite.fixtures.game()

	duplicate := &models.Game{Name: game.Name, ShortName: "other"}
	suite.ErrorIs(suite.games.Create(suite.ctx, duplicate), gorm.ErrDuplicatedKey)

	exists, err := suite.games.ExistsByShortName(suite.ctx, game.ShortName, 0)
	suite.NoError(err)
	suite.True(exists)

	exists, err = suite.games.ExistsByShortName(suite.ctx, game.ShortName, game.ID)
	suite.NoError(err)
	suite.False(exists)
}

func (suite *TournamentRepositoryTestSuite) TestGameUpdate() {
	game := suite.fixtures.game()
	game.Name = "Dota 2"
	game.ShortName = "dota2"

	suite.NoError(suite.games.Update(suite.ctx, game))

	found, err := suite.games.GetByID(suite.ctx, game.ID)
	suite.NoError(err)
	suite.Equal("Dota 2", found.Name)
	suite.Equal("dota2", found.ShortName)

	suite.ErrorIs(suite.games.Update(suite.ctx, &models.Game{ID: 9999, Name: "x", ShortName: "y"}), gorm.ErrRecordNotFound)

	games, err := suite.games.GetAll(suite.ctx)
	suite.NoError(err)
	suite.Len(games, 1)
}

func (suite *TournamentRepositoryTestSuite) TestGameInUseCannotBeDeleted() {
	game := suite.fixtures.game()
	suite.fixtures.tournament(game.ID)

	err := suite.baseTestSuite.DB.Delete(&models.Game{}, "id = ?", game.ID).Error

	suite.ErrorIs(err, gorm.ErrForeignKeyViolated)
}

func TestTournamentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TournamentRepositoryTestSuite))
}
