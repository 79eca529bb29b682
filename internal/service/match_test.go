package service_test

import (
	"context"
	"testing"
	"time"

	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/mocks"
	"powercup-backend/internal/repository"
	"powercup-backend/internal/service"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type MatchServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockMatchRepo *mocks.MockMatchRepositoryInterface
	mockTeamRepo  *mocks.MockTeamRepositoryInterface
	matchService  *service.MatchService
	ctx           context.Context
}

func (suite *MatchServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockMatchRepo = mocks.NewMockMatchRepositoryInterface(suite.ctrl)
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.matchService = service.NewMatchService(suite.mockMatchRepo, suite.mockTeamRepo, service.NewValidator())
	suite.ctx = context.Background()
}

func (suite *MatchServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func sampleMatch(status models.MatchStatus) *models.Match {
	first, second := sampleTeam(), sampleTeam()
	second.ID = 11
	second.Name = "Liquid"
	return &models.Match{
		BaseModel: models.BaseModel{ID: 1, CreatedAt: time.Now()},
		Type:      models.MatchTypeCompetitive,
		Status:    status,
		Members: []models.MatchMember{
			{MatchID: 1, TeamID: first.ID, Team: *first},
			{MatchID: 1, TeamID: second.ID, Team: *second},
		},
	}
}

func (suite *MatchServiceTestSuite) TestCreate_Success() {
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), uint(10)).Return(sampleTeam(), nil)
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), uint(11)).Return(sampleTeam(), nil)
	suite.mockMatchRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, match *models.Match) error {
			suite.Equal(models.MatchStatusPreparing, match.Status)
			suite.Equal(models.MatchTypeCompetitive, match.Type)
			suite.Require().Len(match.Members, 2)
			suite.Equal(uint(10), match.Members[0].TeamID)
			suite.Equal(uint(11), match.Members[1].TeamID)
			match.ID = 1
			return nil
		})
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(models.MatchStatusPreparing), nil)

	resp, err := suite.matchService.Create(suite.ctx, &service.CreateMatchRequest{FirstTeamID: 10, SecondTeamID: 11})

	suite.Require().NoError(err)
	suite.Equal(models.MatchStatusPreparing, resp.Status)
	suite.Len(resp.Members, 2)
	suite.Nil(resp.Winner)
}

func (suite *MatchServiceTestSuite) TestCreate_SameTeams() {
	_, err := suite.matchService.Create(suite.ctx, &service.CreateMatchRequest{FirstTeamID: 10, SecondTeamID: 10})

	suite.ErrorIs(err, apperrors.ErrSameTeams)
}

func (suite *MatchServiceTestSuite) TestCreate_BattleRoyalUnsupported() {
	_, err := suite.matchService.Create(suite.ctx, &service.CreateMatchRequest{
		FirstTeamID: 10, SecondTeamID: 11, Type: models.MatchTypeBattleRoyal,
	})

	suite.ErrorIs(err, apperrors.ErrUnsupportedMatchType)
}

func (suite *MatchServiceTestSuite) TestCreate_UnknownTeam() {
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), uint(10)).Return(sampleTeam(), nil)
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.matchService.Create(suite.ctx, &service.CreateMatchRequest{FirstTeamID: 10, SecondTeamID: 99})

	suite.ErrorIs(err, apperrors.ErrTeamNotFound)
}

func (suite *MatchServiceTestSuite) TestGet_NotFound() {
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.matchService.Get(suite.ctx, 5)

	suite.ErrorIs(err, apperrors.ErrMatchNotFound)
}

func (suite *MatchServiceTestSuite) TestGetAll() {
	finished := sampleMatch(models.MatchStatusFinished)
	finished.WinnerTeamID = ptr(uint(10))
	finished.Winner = sampleTeam()
	suite.mockMatchRepo.EXPECT().GetAll(gomock.Any()).Return([]models.Match{*finished}, nil)

	matches, err := suite.matchService.GetAll(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(matches, 1)
	suite.Require().NotNil(matches[0].Winner)
	suite.Equal("Navi", matches[0].Winner.Name)
	suite.Equal(uint(10), *matches[0].WinnerID)
}

func (suite *MatchServiceTestSuite) TestEdit_Start() {
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(models.MatchStatusPreparing), nil)
	suite.mockMatchRepo.EXPECT().UpdateStatus(gomock.Any(), uint(1), models.MatchStatusPreparing, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uint, _ models.MatchStatus, updates map[string]interface{}) error {
			suite.Equal(models.MatchStatusInProgress, updates["status"])
			suite.Contains(updates, "started_at")
			suite.NotContains(updates, "finished_at")
			return nil
		})
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(models.MatchStatusInProgress), nil)

	resp, err := suite.matchService.Edit(suite.ctx, &service.EditMatchRequest{MatchID: 1, Status: models.MatchStatusInProgress})

	suite.Require().NoError(err)
	suite.Equal(models.MatchStatusInProgress, resp.Status)
}

func (suite *MatchServiceTestSuite) TestEdit_Finish() {
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(models.MatchStatusInProgress), nil)
	suite.mockMatchRepo.EXPECT().UpdateStatus(gomock.Any(), uint(1), models.MatchStatusInProgress, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uint, _ models.MatchStatus, updates map[string]interface{}) error {
			suite.Equal(models.MatchStatusFinished, updates["status"])
			suite.Equal(uint(11), updates["team_winner_id"])
			suite.Contains(updates, "finished_at")
			return nil
		})
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(models.MatchStatusFinished), nil)

	_, err := suite.matchService.Edit(suite.ctx, &service.EditMatchRequest{MatchID: 1, Status: models.MatchStatusFinished, WinnerID: ptr(uint(11))})

	suite.NoError(err)
}

func (suite *MatchServiceTestSuite) TestEdit_CancelWithoutWinner() {
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(models.MatchStatusInProgress), nil)
	suite.mockMatchRepo.EXPECT().UpdateStatus(gomock.Any(), uint(1), models.MatchStatusInProgress, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uint, _ models.MatchStatus, updates map[string]interface{}) error {
			suite.Equal(models.MatchStatusCancelled, updates["status"])
			suite.NotContains(updates, "team_winner_id")
			suite.Contains(updates, "finished_at")
			return nil
		})
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(models.MatchStatusCancelled), nil)

	_, err := suite.matchService.Edit(suite.ctx, &service.EditMatchRequest{MatchID: 1, Status: models.MatchStatusCancelled})

	suite.NoError(err)
}

func (suite *MatchServiceTestSuite) TestEdit_Rejected() {
	cases := []struct {
		name    string
		current models.MatchStatus
		req     service.EditMatchRequest
		want    error
	}{
		{"back to preparing", models.MatchStatusInProgress, service.EditMatchRequest{Status: models.MatchStatusPreparing}, nil},
		{"same status", models.MatchStatusPreparing, service.EditMatchRequest{Status: models.MatchStatusPreparing}, apperrors.ErrSameStatus},
		{"finish without winner", models.MatchStatusInProgress, service.EditMatchRequest{Status: models.MatchStatusFinished}, apperrors.ErrWinnerRequired},
		{"finish with outside winner", models.MatchStatusInProgress, service.EditMatchRequest{Status: models.MatchStatusFinished, WinnerID: ptr(uint(99))}, nil},
		{"finish before start", models.MatchStatusPreparing, service.EditMatchRequest{Status: models.MatchStatusFinished, WinnerID: ptr(uint(10))}, nil},
		{"start twice", models.MatchStatusFinished, service.EditMatchRequest{Status: models.MatchStatusInProgress}, nil},
		{"cancel finished", models.MatchStatusFinished, service.EditMatchRequest{Status: models.MatchStatusCancelled}, nil},
		{"cancel with outside winner", models.MatchStatusPreparing, service.EditMatchRequest{Status: models.MatchStatusCancelled, WinnerID: ptr(uint(99))}, nil},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(tc.current), nil)
			req := tc.req
			req.MatchID = 1

			_, err := suite.matchService.Edit(suite.ctx, &req)

			suite.Require().Error(err)
			suite.True(apperrors.IsValidation(err), err.Error())
			if tc.want != nil {
				suite.ErrorIs(err, tc.want)
			}
		})
	}
}

func (suite *MatchServiceTestSuite) TestEdit_UnknownStatus() {
	_, err := suite.matchService.Edit(suite.ctx, &service.EditMatchRequest{MatchID: 1, Status: "paused"})

	suite.ErrorIs(err, apperrors.ErrInvalidStatus)
}

func (suite *MatchServiceTestSuite) TestEdit_NotFound() {
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.matchService.Edit(suite.ctx, &service.EditMatchRequest{MatchID: 1, Status: models.MatchStatusInProgress})

	suite.ErrorIs(err, apperrors.ErrMatchNotFound)
}

func (suite *MatchServiceTestSuite) TestEdit_ConcurrentTransition() {
	suite.mockMatchRepo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(sampleMatch(models.MatchStatusPreparing), nil)
	suite.mockMatchRepo.EXPECT().UpdateStatus(gomock.Any(), uint(1), models.MatchStatusPreparing, gomock.Any()).
		Return(repository.ErrConcurrentUpdate)

	_, err := suite.matchService.Edit(suite.ctx, &service.EditMatchRequest{MatchID: 1, Status: models.MatchStatusInProgress})

	suite.ErrorIs(err, apperrors.ErrMatchStatusChanged)
	suite.True(apperrors.IsConflict(err))
}

func TestMatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MatchServiceTestSuite))
}
