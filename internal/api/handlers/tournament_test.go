package handlers_test

import (
	"bytes"
	"net/http"
	"testing"

	"powercup-backend/internal/api/handlers"
	"powercup-backend/internal/database/models"
	apperrors "powercup-backend/internal/errors"
	"powercup-backend/internal/mocks"
	"powercup-backend/internal/service"
	"powercup-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testPosterLimit = 64

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// TournamentHandlerTestSuite defines the test suite for TournamentHandler
type TournamentHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockTournamentServiceInterface
	handler     *handlers.TournamentHandler
	httpSuite   *testutils.HTTPTestSuite
	caller      *models.User
}

func (suite *TournamentHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockTournamentServiceInterface(suite.ctrl)
	suite.handler = handlers.NewTournamentHandler(suite.mockService, testPosterLimit)
	suite.caller = owner

	suite.httpSuite = testutils.SetupHTTPTest()
	router := suite.httpSuite.Router
	router.Use(func(c *gin.Context) { asCaller(suite.caller)(c) })
	router.POST("/tournament", suite.handler.CreateTournament)
	router.GET("/tournament", suite.handler.GetTournament)
	router.GET("/tournaments", suite.handler.ListTournaments)
	router.PATCH("/tournament", suite.handler.UpdateTournament)
	router.POST("/tournament/member", suite.handler.JoinTournament)
	router.PATCH("/tournament/member", suite.handler.SetMemberStatus)
}

func (suite *TournamentHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TournamentHandlerTestSuite) TestCreateTournament() {
	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().
			Create(gomock.Any(), &service.CreateTournamentRequest{Name: "Spring Cup", Description: ptr("Best of three"), GameID: 1}, pngHeader).
			Return(&service.TournamentResponse{ID: 7, Name: "Spring Cup", PosterURL: ptr("https://cdn/TO_1_poster.png")}, nil)

		recorder := suite.httpSuite.MakeMultipartRequest(http.MethodPost, "/tournament", map[string]string{
			"name":        "Spring Cup",
			"description": "Best of three",
			"game_id":     "1",
		}, "poster", "poster.png", pngHeader)

		var response service.TournamentResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &response)
		assert.Equal(t, uint(7), response.ID)
	})

	suite.T().Run("Missing poster is passed as nil", func(t *testing.T) {
		suite.mockService.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(nil, apperrors.ErrPosterRequired)

		recorder := suite.httpSuite.MakeMultipartRequest(http.MethodPost, "/tournament", map[string]string{
			"name":    "Spring Cup",
			"game_id": "1",
		}, "", "", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "poster image is required")
	})

	suite.T().Run("Oversized poster is truncated one byte past the limit", func(t *testing.T) {
		big := bytes.Repeat([]byte{0xff}, testPosterLimit*2)
		suite.mockService.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Len(testPosterLimit+1)).
			Return(nil, apperrors.ErrPosterTooLarge)

		recorder := suite.httpSuite.MakeMultipartRequest(http.MethodPost, "/tournament", map[string]string{
			"name":    "Spring Cup",
			"game_id": "1",
		}, "poster", "poster.png", big)

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "file is too large")
	})

	suite.T().Run("Invalid image", func(t *testing.T) {
		suite.mockService.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvalidImage)

		recorder := suite.httpSuite.MakeMultipartRequest(http.MethodPost, "/tournament", map[string]string{
			"name":    "Spring Cup",
			"game_id": "1",
		}, "poster", "poster.txt", []byte("plain text"))

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "Invalid image")
	})

	suite.T().Run("Non numeric game", func(t *testing.T) {
		recorder := suite.httpSuite.MakeMultipartRequest(http.MethodPost, "/tournament", map[string]string{
			"name":    "Spring Cup",
			"game_id": "cs",
		}, "poster", "poster.png", pngHeader)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func (suite *TournamentHandlerTestSuite) TestGetTournament() {
	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().Get(gomock.Any(), uint(7)).Return(&service.TournamentResponse{ID: 7}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/tournament?id=7", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	suite.T().Run("Not found", func(t *testing.T) {
		suite.mockService.EXPECT().Get(gomock.Any(), uint(8)).Return(nil, apperrors.ErrTournamentNotFound)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/tournament?id=8", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "Tournament not found")
	})
}

func (suite *TournamentHandlerTestSuite) TestListTournaments() {
	suite.mockService.EXPECT().GetAll(gomock.Any()).Return([]service.TournamentResponse{{ID: 7}}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/tournaments", nil)

	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *TournamentHandlerTestSuite) TestUpdateTournament() {
	suite.T().Run("Start", func(t *testing.T) {
		status := models.TournamentStatusActive
		suite.mockService.EXPECT().
			Update(gomock.Any(), &service.UpdateTournamentRequest{TournamentID: 7, Status: &status}).
			Return(&service.TournamentResponse{ID: 7, Status: status}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPatch, "/tournament", map[string]interface{}{
			"tournament_id": 7,
			"status":        "active",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	suite.T().Run("Concurrent change", func(t *testing.T) {
		suite.mockService.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrTournamentStatusChanged)

		recorder := suite.httpSuite.MakeRequest(http.MethodPatch, "/tournament", map[string]interface{}{
			"tournament_id": 7,
			"status":        "finished",
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func (suite *TournamentHandlerTestSuite) TestJoinTournament() {
	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().Join(gomock.Any(), owner.ID, &service.TournamentTeamRequest{TournamentID: 7, TeamID: 10}).Return(nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/tournament/member", map[string]interface{}{
			"tournament_id": 7,
			"team_id":       10,
		})

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	suite.T().Run("Closed tournament", func(t *testing.T) {
		suite.mockService.EXPECT().Join(gomock.Any(), owner.ID, gomock.Any()).
			Return(apperrors.NewAuthorizationError("It is no longer possible to join a tournament with ID 7"))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/tournament/member", map[string]interface{}{
			"tournament_id": 7,
			"team_id":       10,
		})

		testutils.AssertErrorResponse(t, recorder, http.StatusForbidden, "no longer possible")
	})

	suite.T().Run("Anonymous", func(t *testing.T) {
		suite.caller = nil
		defer func() { suite.caller = owner }()

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/tournament/member", map[string]interface{}{
			"tournament_id": 7,
			"team_id":       10,
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func (suite *TournamentHandlerTestSuite) TestSetMemberStatus() {
	suite.T().Run("Accept", func(t *testing.T) {
		suite.mockService.EXPECT().
			SetMemberStatus(gomock.Any(), &service.TournamentMemberStatusRequest{TournamentID: 7, TeamID: 10, Status: models.TournamentMemberStatusAccepted}).
			Return(nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPatch, "/tournament/member", map[string]interface{}{
			"tournament_id": 7,
			"team_id":       10,
			"status":        "accepted",
		})

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	suite.T().Run("Team never applied", func(t *testing.T) {
		suite.mockService.EXPECT().SetMemberStatus(gomock.Any(), gomock.Any()).Return(apperrors.ErrTeamNotInTournament)

		recorder := suite.httpSuite.MakeRequest(http.MethodPatch, "/tournament/member", map[string]interface{}{
			"tournament_id": 7,
			"team_id":       11,
			"status":        "accepted",
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestTournamentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TournamentHandlerTestSuite))
}
