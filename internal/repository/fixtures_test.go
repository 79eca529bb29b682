//go:build integration
// +build integration

package repository

import (
	"context"

	"powercup-backend/internal/database/models"
	"powercup-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// fixtures persists factory objects through the repositories under test
type fixtures struct {
	base      *testutils.BaseTestSuite
	owner     *suite.Suite
	factories *testutils.FactorySet
}

func newFixtures(base *testutils.BaseTestSuite, owner *suite.Suite) *fixtures {
	return &fixtures{base: base, owner: owner, factories: testutils.NewFactorySet()}
}

func (f *fixtures) user() *models.User {
	user := f.factories.User.Create()
	f.owner.Require().NoError(NewUserRepository(f.base.DB).Create(context.Background(), user), "create user")
	return user
}

func (f *fixtures) team(ownerID uint, inviteIDs ...uint) *models.Team {
	team := f.factories.Team.Create()
	f.owner.Require().NoError(NewTeamRepository(f.base.DB).CreateWithOwner(context.Background(), team, ownerID, inviteIDs), "create team")
	return team
}

func (f *fixtures) game() *models.Game {
	game := f.factories.Game.Create()
	f.owner.Require().NoError(NewGameRepository(f.base.DB).Create(context.Background(), game), "create game")
	return game
}

func (f *fixtures) tournament(gameID uint) *models.Tournament {
	tournament := f.factories.Tournament.Create(gameID)
	f.owner.Require().NoError(NewTournamentRepository(f.base.DB).Create(context.Background(), tournament), "create tournament")
	return tournament
}
