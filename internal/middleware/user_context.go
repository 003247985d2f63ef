package middleware

import (
	"fmt"

	"github.com/fullstack/taskboard/internal/constants"
	apierrors "github.com/fullstack/taskboard/internal/errors"
	"github.com/fullstack/taskboard/internal/models"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/fullstack/taskboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// ResolveUser loads the user named by the :userId path parameter and stores it
// in the context. An unknown user is a 400, matching the other owner-scoped errors.
func ResolveUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.ParseID(c.Param("userId"))
		if err != nil {
			apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidFormat, "Invalid user ID")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			Logger(c).WithError(err).Error("Failed to resolve user")
			apierrors.InternalError(c, "An error occurred while retrieving the user")
			return
		}
		if user == nil {
			apierrors.BadRequestWithCode(c, apierrors.ErrCodeNotFound, fmt.Sprintf("User not found with ID: %d", userID))
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// Owner returns the user stored by ResolveUser
func Owner(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
