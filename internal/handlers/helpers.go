package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/fullstack/taskboard/internal/errors"
	"github.com/fullstack/taskboard/internal/middleware"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/fullstack/taskboard/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes the request body into req. On failure it writes a 400 and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = validationMessage(fe)
		}
		apierrors.BadRequestWithDetails(c, "Invalid request body", details)
		return false
	}

	apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "enum":
		return "has an unknown value"
	default:
		return "failed on " + fe.Tag()
	}
}

// pathID parses the named numeric path parameter. On failure it writes a 400.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidFormat, "Invalid ID: "+c.Param(name))
		return 0, false
	}
	return id, true
}

// respondError maps a service error onto the response. Domain errors become
// 400 with their own message; anything else is logged and becomes a 500 with
// fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		code := apierrors.ErrCodeInvalidInput
		switch {
		case errors.Is(err, services.ErrNotFound):
			code = apierrors.ErrCodeNotFound
		case errors.Is(err, services.ErrDuplicateKey):
			code = apierrors.ErrCodeAlreadyExists
		}
		apierrors.BadRequestWithCode(c, code, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoTasksGenerated), errors.Is(err, services.ErrAINoValidTasks):
		apierrors.BadRequest(c, err.Error())
	default:
		middleware.Logger(c).WithError(err).Error(fallback)
		apierrors.InternalError(c, fallback)
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Task Management API is running",
	})
}
