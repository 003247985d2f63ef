package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fullstack/taskboard/internal/constants"
	"github.com/fullstack/taskboard/internal/database"
	apierrors "github.com/fullstack/taskboard/internal/errors"
	"github.com/fullstack/taskboard/internal/models"
	"github.com/fullstack/taskboard/internal/repository"
	"github.com/fullstack/taskboard/internal/security"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// HandlerTestSuite drives the full router against an in-memory database
type HandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	users  *services.UserService
	tasks  *services.TaskService
	router *gin.Engine
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQLite(database.InMemoryDSN, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	suite.Require().NoError(database.Migrate(db, log))

	store := repository.NewStore(db)
	suite.db = db
	suite.users = services.NewUserService(store, security.BcryptHasher{Cost: bcrypt.MinCost})
	suite.tasks = services.NewTaskService(store, nil)

	suite.router = newTestRouter(suite.users, suite.tasks, log)
}

// TearDownTest runs after each test
func (suite *HandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func ctx() context.Context { return context.Background() }

func newTestRouter(users *services.UserService, tasks *services.TaskService, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router, Dependencies{
		Users:        users,
		Tasks:        tasks,
		SessionStore: cookie.NewStore([]byte("secret")),
		Logger:       log,
	})
	return router
}

func (suite *HandlerTestSuite) request(method, url string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return serve(suite.T(), suite.router, method, url, body, cookies...)
}

func serve(t *testing.T, router *gin.Engine, method, url string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *HandlerTestSuite) assertError(w *httptest.ResponseRecorder, status int, code, message string) {
	suite.Require().Equal(status, w.Code, w.Body.String())
	var body apierrors.APIError
	suite.decode(w, &body)
	suite.Equal(code, body.Code)
	if message != "" {
		suite.Equal(message, body.Message)
	}
}

// Helper function to create test data
func (suite *HandlerTestSuite) createTestUser(username string) *models.User {
	user, err := suite.users.Create(ctx(), services.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	suite.Require().NoError(err)
	return user
}

func (suite *HandlerTestSuite) createTestTask(userID uint64, title string, status models.TaskStatus, priority models.TaskPriority) *models.Task {
	task, err := suite.tasks.Create(ctx(), &models.Task{
		Title:    title,
		Status:   status,
		Priority: priority,
		UserID:   userID,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(w.Header().Get(constants.HeaderRequestID))
}

func (suite *HandlerTestSuite) TestCORSPreflight() {
	w := suite.request(http.MethodOptions, "/api/users", nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *HandlerTestSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal("abc-123", w.Header().Get(constants.HeaderRequestID))
}
