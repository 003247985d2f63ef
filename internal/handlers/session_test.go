package handlers

import (
	"net/http"

	"github.com/fullstack/taskboard/internal/config"
	"github.com/fullstack/taskboard/internal/dto"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/gin-contrib/sessions/cookie"
)

func (suite *HandlerTestSuite) TestSession_Lifecycle() {
	alice := suite.createTestUser("alice")

	w := suite.request(http.MethodGet, "/api/session", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, "/api/users/validate", map[string]string{"username": "alice", "password": "secret123"})
	suite.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	w = suite.request(http.MethodGet, "/api/session", nil, cookies...)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var got dto.UserDTO
	suite.decode(w, &got)
	suite.Equal(alice.ID, got.ID)

	_, err := suite.users.Deactivate(ctx(), alice.ID)
	suite.Require().NoError(err)
	w = suite.request(http.MethodGet, "/api/session", nil, cookies...)
	suite.Equal(http.StatusUnauthorized, w.Code, "deactivated users lose their session")

	w = suite.request(http.MethodDelete, "/api/session", nil, cookies...)
	suite.Require().Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestSession_FailedValidationStoresNothing() {
	suite.createTestUser("alice")

	w := suite.request(http.MethodPost, "/api/users/validate", map[string]string{"username": "alice", "password": "nope"})
	suite.Require().Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/api/session", nil, w.Result().Cookies()...)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestNewSessionStore_Cookie() {
	store, err := NewSessionStore(&config.Config{SessionStore: "cookie", SessionSecret: "s3cret", GinMode: "release"})
	suite.Require().NoError(err)
	_, ok := store.(cookie.Store)
	suite.True(ok)
}

func (suite *HandlerTestSuite) TestGenerateTasks_NotConfigured() {
	owner := suite.createTestUser("alice")

	w := suite.request(http.MethodPost, "/api/tasks/user/"+itoa(owner.ID)+"/generate", map[string]string{"text": "plan the launch"})
	suite.assertError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", services.ErrAIServiceNotConfigured.Error())
}
