package handlers

import (
	"net/http"

	"github.com/fullstack/taskboard/internal/dto"
	apierrors "github.com/fullstack/taskboard/internal/errors"
	"github.com/fullstack/taskboard/internal/middleware"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the /api/users routes.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUser registers a new user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), services.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err, "An error occurred while creating the user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "An error occurred while retrieving the user")
		return
	}
	if user == nil {
		apierrors.NotFound(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err, "An error occurred while retrieving the user")
		return
	}
	if user == nil {
		apierrors.NotFound(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListUsers returns all active users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err, "An error occurred while retrieving users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, services.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err, "An error occurred while updating the user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeactivateUser soft-deletes a user.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.users.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err, "An error occurred while deactivating the user")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deactivated successfully"})
}

func (h *UserHandler) ActivateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.users.Activate(c.Request.Context(), id); err != nil {
		respondError(c, err, "An error occurred while activating the user")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User activated successfully"})
}

func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RoleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.users.UpdateRole(c.Request.Context(), id, req.Role); err != nil {
		respondError(c, err, "An error occurred while updating the user role")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User role updated successfully"})
}

// ValidateCredentials checks a username/password pair. A match is remembered
// in the session.
func (h *UserHandler) ValidateCredentials(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	valid, err := h.users.ValidateCredentials(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err, "An error occurred while validating credentials")
		return
	}
	if !valid {
		apierrors.InvalidCredentials(c)
		return
	}

	user, err := h.users.GetByUsername(ctx, req.Username)
	if err != nil || user == nil {
		respondError(c, err, "An error occurred while validating credentials")
		return
	}
	if err := middleware.RememberUser(c, user.ID); err != nil {
		middleware.Logger(c).WithError(err).Error("Failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Credentials are valid"})
}
