package handlers

import (
	"github.com/fullstack/taskboard/internal/constants"
	"github.com/fullstack/taskboard/internal/middleware"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies holds everything the HTTP layer needs.
type Dependencies struct {
	Users        *services.UserService
	Tasks        *services.TaskService
	SessionStore sessions.Store
	Logger       *logrus.Logger
}

// RegisterRoutes installs the middleware chain and every API route on router.
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	registerValidators()

	router.Use(gin.Recovery())
	if deps.Logger != nil {
		router.Use(middleware.RequestLogger(deps.Logger))
	}
	router.Use(middleware.CORS())
	router.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	userHandler := NewUserHandler(deps.Users)
	taskHandler := NewTaskHandler(deps.Tasks, deps.Users)
	sessionHandler := NewSessionHandler(deps.Users)

	router.GET("/health", health)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.POST("/validate", userHandler.ValidateCredentials)
			users.GET("/username/:username", userHandler.GetUserByUsername)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeactivateUser)
			users.PUT("/:id/activate", userHandler.ActivateUser)
			users.PUT("/:id/role", userHandler.UpdateUserRole)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PUT("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)

			owned := tasks.Group("/user/:userId")
			owned.Use(middleware.ResolveUser(deps.Users))
			{
				owned.GET("", taskHandler.ListUserTasks)
				owned.GET("/status/:status", taskHandler.ListUserTasksByStatus)
				owned.GET("/priority/:priority", taskHandler.ListUserTasksByPriority)
				owned.GET("/overdue", taskHandler.ListOverdueTasks)
				owned.GET("/due-soon/:days", taskHandler.ListTasksDueSoon)
				owned.GET("/statistics", taskHandler.GetTaskStatistics)
				owned.GET("/high-priority", taskHandler.ListHighPriorityTasks)
				owned.GET("/completed", taskHandler.ListCompletedTasks)
				owned.POST("/generate", taskHandler.GenerateTasks)
			}
		}

		session := api.Group("/session")
		{
			session.GET("", middleware.RequireSession(), sessionHandler.GetSession)
			session.DELETE("", sessionHandler.DeleteSession)
		}
	}
}
