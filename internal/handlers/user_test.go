package handlers

import (
	"net/http"

	"github.com/fullstack/taskboard/internal/dto"
	apierrors "github.com/fullstack/taskboard/internal/errors"
	"github.com/fullstack/taskboard/internal/models"
)

func (suite *HandlerTestSuite) TestCreateUser() {
	w := suite.request(http.MethodPost, "/api/users", map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "secret123",
		"firstName": "Alice",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var raw map[string]interface{}
	suite.decode(w, &raw)
	suite.NotContains(raw, "password")
	suite.Equal("USER", raw["role"])
	suite.Equal("User", raw["roleDisplayName"])
	suite.Equal(true, raw["isActive"])
	suite.Equal("Alice", raw["firstName"])
	suite.Contains(raw, "createdAt")
}

func (suite *HandlerTestSuite) TestCreateUser_Duplicate() {
	suite.createTestUser("alice")

	w := suite.request(http.MethodPost, "/api/users", map[string]string{
		"username": "alice",
		"email":    "different@example.com",
		"password": "secret123",
	})
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeAlreadyExists, "Username already exists: alice")
}

func (suite *HandlerTestSuite) TestCreateUser_Validation() {
	w := suite.request(http.MethodPost, "/api/users", map[string]string{
		"username": "al",
		"password": "secret123",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	var body struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	suite.decode(w, &body)
	suite.Equal(apierrors.ErrCodeInvalidInput, body.Code)
	suite.Contains(body.Details, "Username")
	suite.Contains(body.Details, "Email")

	w = suite.request(http.MethodPost, "/api/users", `{"username":`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetUser() {
	user := suite.createTestUser("alice")

	w := suite.request(http.MethodGet, "/api/users/"+itoa(user.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var got dto.UserDTO
	suite.decode(w, &got)
	suite.Equal("alice", got.Username)
	suite.Equal("alice@example.com", got.Email)

	w = suite.request(http.MethodGet, "/api/users/999", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/api/users/abc", nil)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidFormat, "")
}

func (suite *HandlerTestSuite) TestGetUserByUsername() {
	suite.createTestUser("alice")

	w := suite.request(http.MethodGet, "/api/users/username/alice", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/users/username/ghost", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListUsers_OnlyActive() {
	suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	w := suite.request(http.MethodDelete, "/api/users/"+itoa(bob.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var msg dto.MessageResponse
	suite.decode(w, &msg)
	suite.Equal("User deactivated successfully", msg.Message)

	w = suite.request(http.MethodGet, "/api/users", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var users []dto.UserDTO
	suite.decode(w, &users)
	suite.Require().Len(users, 1)
	suite.Equal("alice", users[0].Username)

	w = suite.request(http.MethodPut, "/api/users/"+itoa(bob.ID)+"/activate", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &msg)
	suite.Equal("User activated successfully", msg.Message)

	w = suite.request(http.MethodGet, "/api/users", nil)
	suite.decode(w, &users)
	suite.Len(users, 2)
}

func (suite *HandlerTestSuite) TestLifecycle_UnknownUser() {
	w := suite.request(http.MethodDelete, "/api/users/999", nil)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeNotFound, "User not found with ID: 999")

	w = suite.request(http.MethodPut, "/api/users/999/activate", nil)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeNotFound, "User not found with ID: 999")
}

func (suite *HandlerTestSuite) TestUpdateUser() {
	alice := suite.createTestUser("alice")
	suite.createTestUser("bob")

	w := suite.request(http.MethodPut, "/api/users/"+itoa(alice.ID), map[string]string{
		"username": "alice",
		"email":    "alice@new.example.com",
		"lastName": "Liddell",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var got dto.UserDTO
	suite.decode(w, &got)
	suite.Equal("alice@new.example.com", got.Email)
	suite.Equal("Liddell", got.LastName)

	w = suite.request(http.MethodPut, "/api/users/"+itoa(alice.ID), map[string]string{
		"username": "bob",
		"email":    "alice@new.example.com",
	})
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeAlreadyExists, "Username already exists: bob")

	w = suite.request(http.MethodPut, "/api/users/999", map[string]string{
		"username": "nobody",
		"email":    "nobody@example.com",
	})
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeNotFound, "User not found with ID: 999")
}

func (suite *HandlerTestSuite) TestUpdateUserRole() {
	alice := suite.createTestUser("alice")

	w := suite.request(http.MethodPut, "/api/users/"+itoa(alice.ID)+"/role", map[string]string{"role": "ADMIN"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var msg dto.MessageResponse
	suite.decode(w, &msg)
	suite.Equal("User role updated successfully", msg.Message)

	stored, err := suite.users.GetByID(ctx(), alice.ID)
	suite.Require().NoError(err)
	suite.Equal(models.RoleAdmin, stored.Role)

	w = suite.request(http.MethodPut, "/api/users/"+itoa(alice.ID)+"/role", map[string]string{"role": "ROOT"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPut, "/api/users/"+itoa(alice.ID)+"/role", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestValidateCredentials() {
	suite.createTestUser("alice")

	w := suite.request(http.MethodPost, "/api/users/validate", map[string]string{"username": "alice", "password": "secret123"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var msg dto.MessageResponse
	suite.decode(w, &msg)
	suite.Equal("Credentials are valid", msg.Message)
	suite.NotEmpty(w.Result().Cookies(), "expected session cookie to be set")

	w = suite.request(http.MethodPost, "/api/users/validate", map[string]string{"username": "alice", "password": "wrong"})
	suite.assertError(w, http.StatusUnauthorized, apierrors.ErrCodeInvalidCredentials, "Invalid credentials")

	w = suite.request(http.MethodPost, "/api/users/validate", map[string]string{"username": "ghost", "password": "x"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}
