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

// TeamJoinRequestRepositoryTestSuite tests pending invitations and requests
type TeamJoinRequestRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamJoinRequestRepository
	members       *TeamMemberRepository
	fixtures      *fixtures
	ctx           context.Context
}

func (suite *TeamJoinRequestRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewTeamJoinRequestRepository(suite.baseTestSuite.DB)
	suite.members = NewTeamMemberRepository(suite.baseTestSuite.DB)
	suite.fixtures = newFixtures(suite.baseTestSuite, &suite.Suite)
	suite.ctx = context.Background()
}

func (suite *TeamJoinRequestRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *TeamJoinRequestRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *TeamJoinRequestRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TeamJoinRequestRepositoryTestSuite) TestOnePendingRowPerPair() {
	owner := suite.fixtures.user()
	player := suite.fixtures.user()
	team := suite.fixtures.team(owner.ID, player.ID)

	err := suite.repo.Create(suite.ctx, &models.TeamJoinRequest{TeamID: team.ID, UserID: player.ID, Type: models.JoinRequestTypeRequest})

	suite.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (suite *TeamJoinRequestRepositoryTestSuite) TestAcceptCreatesMembership() {
	owner := suite.fixtures.user()
	player := suite.fixtures.user()
	team := suite.fixtures.team(owner.ID, player.ID)

	suite.NoError(suite.repo.Accept(suite.ctx, team.ID, player.ID, models.JoinRequestTypeInvite))

	member, err := suite.members.Get(suite.ctx, team.ID, player.ID)
	suite.NoError(err)
	suite.Equal(models.TeamRoleMember, member.Role)
	_, err = suite.repo.Get(suite.ctx, team.ID, player.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TeamJoinRequestRepositoryTestSuite) TestAcceptWrongKindLeavesRowUntouched() {
	owner := suite.fixtures.user()
	player := suite.fixtures.user()
	team := suite.fixtures.team(owner.ID, player.ID)

	err := suite.repo.Accept(suite.ctx, team.ID, player.ID, models.JoinRequestTypeRequest)

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	_, err = suite.repo.Get(suite.ctx, team.ID, player.ID)
	suite.NoError(err)
	_, err = suite.members.Get(suite.ctx, team.ID, player.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TeamJoinRequestRepositoryTestSuite) TestDelete() {
	owner := suite.fixtures.user()
	player := suite.fixtures.user()
	team := suite.fixtures.team(owner.ID, player.ID)

	suite.ErrorIs(suite.repo.Delete(suite.ctx, team.ID, player.ID, models.JoinRequestTypeRequest), gorm.ErrRecordNotFound)
	suite.NoError(suite.repo.Delete(suite.ctx, team.ID, player.ID, models.JoinRequestTypeInvite))
	suite.ErrorIs(suite.repo.Delete(suite.ctx, team.ID, player.ID, models.JoinRequestTypeInvite), gorm.ErrRecordNotFound)
}

func (suite *TeamJoinRequestRepositoryTestSuite) TestListByUserFiltersKind() {
	owner := suite.fixtures.user()
	player := suite.fixtures.user()
	inviting := suite.fixtures.team(owner.ID, player.ID)
	requested := suite.fixtures.team(owner.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, &models.TeamJoinRequest{
		TeamID: requested.ID, UserID: player.ID, Type: models.JoinRequestTypeRequest,
	}))

	invites, err := suite.repo.ListByUser(suite.ctx, player.ID, models.JoinRequestTypeInvite)
	suite.NoError(err)
	suite.Require().Len(invites, 1)
	suite.Equal(inviting.ID, invites[0].TeamID)
	suite.Equal(inviting.Name, invites[0].Team.Name)

	requests, err := suite.repo.ListByUser(suite.ctx, player.ID, models.JoinRequestTypeRequest)
	suite.NoError(err)
	suite.Require().Len(requests, 1)
	suite.Equal(requested.ID, requests[0].TeamID)
}

func (suite *TeamJoinRequestRepositoryTestSuite) TestListByTeamPreloadsUsers() {
	owner := suite.fixtures.user()
	first := suite.fixtures.user()
	second := suite.fixtures.user()
	team := suite.fixtures.team(owner.ID, first.ID, second.ID)

	requests, err := suite.repo.ListByTeam(suite.ctx, team.ID)

	suite.NoError(err)
	suite.Require().Len(requests, 2)
	names := []string{requests[0].User.Name, requests[1].User.Name}
	suite.ElementsMatch([]string{first.Name, second.Name}, names)
}

func TestTeamJoinRequestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TeamJoinRequestRepositoryTestSuite))
}
