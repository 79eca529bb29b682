package handlers_test

import (
	"errors"
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

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockUserServiceInterface
	handler     *handlers.UserHandler
	httpSuite   *testutils.HTTPTestSuite
	caller      *models.User
}

func (suite *UserHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockUserServiceInterface(suite.ctrl)
	suite.handler = handlers.NewUserHandler(suite.mockService)
	suite.caller = nil

	suite.httpSuite = testutils.SetupHTTPTest()
	router := suite.httpSuite.Router
	router.Use(func(c *gin.Context) { asCaller(suite.caller)(c) })
	router.POST("/auth/register", suite.handler.Register)
	router.GET("/user", suite.handler.GetUser)
	router.GET("/users", suite.handler.ListUsers)
	router.GET("/me", suite.handler.Me)
	router.GET("/me/teams", suite.handler.MyTeams)
}

func (suite *UserHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UserHandlerTestSuite) TestRegister() {
	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().
			Register(gomock.Any(), &service.RegisterRequest{Name: "john_doe", Password: "secret"}).
			Return(&service.UserResponse{ID: 4, Name: "john_doe"}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/auth/register", map[string]interface{}{
			"name":     "john_doe",
			"password": "secret",
		})

		var response service.UserResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &response)
		assert.Equal(t, uint(4), response.ID)
	})

	suite.T().Run("Name taken", func(t *testing.T) {
		suite.mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrUserExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/auth/register", map[string]interface{}{
			"name":     "John_Doe",
			"password": "secret",
		})

		testutils.AssertErrorResponse(t, recorder, http.StatusConflict, "A user with this name already exists")
	})

	suite.T().Run("Invalid JSON", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/auth/register", "not an object")

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "Invalid request")
	})
}

func (suite *UserHandlerTestSuite) TestGetUser() {
	suite.T().Run("Anonymous viewer", func(t *testing.T) {
		suite.caller = nil
		suite.mockService.EXPECT().
			GetUser(gomock.Any(), service.UserQuery{Name: "owner"}, uint(0)).
			Return(&service.UserResponse{ID: 1, Name: "owner"}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/user?name=owner", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "personal_data")
	})

	suite.T().Run("Viewer is passed through", func(t *testing.T) {
		suite.caller = owner
		suite.mockService.EXPECT().
			GetUser(gomock.Any(), service.UserQuery{ID: 1}, owner.ID).
			Return(&service.UserResponse{ID: 1, Name: "owner", PersonalData: &service.PersonalData{FirstName: ptr("Ann")}}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/user?id=1", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"first_name":"Ann"`)
	})

	suite.T().Run("Neither id nor name", func(t *testing.T) {
		suite.caller = nil
		suite.mockService.EXPECT().GetUser(gomock.Any(), service.UserQuery{}, uint(0)).Return(nil, apperrors.ErrIDOrNameRequired)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/user", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "An ID or name is required")
	})

	suite.T().Run("Malformed id", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/user?id=abc", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	suite.T().Run("Not found", func(t *testing.T) {
		suite.mockService.EXPECT().GetUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrUserNotFound)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/user?id=77", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "User not found")
	})
}

func (suite *UserHandlerTestSuite) TestListUsers() {
	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().GetAll(gomock.Any()).Return([]service.UserResponse{{ID: 1}, {ID: 2}}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/users", nil)

		var response []service.UserResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
		assert.Len(t, response, 2)
	})

	suite.T().Run("Database failure is hidden", func(t *testing.T) {
		suite.mockService.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("connection refused"))

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/users", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusInternalServerError, "Internal server error")
		assert.NotContains(t, recorder.Body.String(), "connection refused")
	})
}

func (suite *UserHandlerTestSuite) TestMe() {
	suite.T().Run("Authenticated", func(t *testing.T) {
		suite.caller = owner
		suite.mockService.EXPECT().Me(owner).Return(&service.UserResponse{ID: owner.ID, Name: owner.Name, PersonalData: &service.PersonalData{}})

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "personal_data")
	})

	suite.T().Run("Anonymous", func(t *testing.T) {
		suite.caller = nil

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/me", nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusUnauthorized, "Not authenticated")
	})
}

func (suite *UserHandlerTestSuite) TestMyTeams() {
	suite.caller = owner
	suite.mockService.EXPECT().GetTeams(gomock.Any(), owner.ID).Return([]service.TeamResponse{
		{TeamSummary: service.TeamSummary{ID: 10, Name: "Navi"}},
	}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/me/teams", nil)

	var response []service.TeamResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	suite.Require().Len(response, 1)
	suite.Equal("Navi", response[0].Name)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
