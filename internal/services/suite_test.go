package services_test

import (
	"io"
	"time"

	"github.com/fullstack/taskboard/internal/database"
	"github.com/fullstack/taskboard/internal/models"
	"github.com/fullstack/taskboard/internal/repository"
	"github.com/fullstack/taskboard/internal/security"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// serviceSuite wires both services to a fresh in-memory database.
type serviceSuite struct {
	suite.Suite
	db    *gorm.DB
	clock *fakeClock
	users *services.UserService
	tasks *services.TaskService
}

func (s *serviceSuite) SetupTest() {
	db, err := database.OpenSQLite(database.InMemoryDSN, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	s.Require().NoError(database.Migrate(db, log))

	s.db = db
	s.clock = &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

	store := repository.NewStore(db)
	s.users = services.NewUserService(store, security.BcryptHasher{Cost: bcrypt.MinCost}).WithClock(s.clock.Now)
	s.tasks = services.NewTaskService(store, nil).WithClock(s.clock.Now)
}

func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *serviceSuite) createUser(username string) *models.User {
	user, err := s.users.Create(ctx, services.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	s.Require().NoError(err)
	return user
}

func (s *serviceSuite) createTask(userID uint64, title string, status models.TaskStatus, due *time.Time) *models.Task {
	task, err := s.tasks.Create(ctx, &models.Task{
		Title:   title,
		Status:  status,
		DueDate: due,
		UserID:  userID,
	})
	s.Require().NoError(err)
	return task
}

func at(t time.Time) *time.Time { return &t }
