package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fullstack/taskboard/internal/constants"
	"github.com/fullstack/taskboard/internal/models"
	"github.com/fullstack/taskboard/internal/repository"
	"github.com/fullstack/taskboard/internal/security"
)

// UserService handles account lifecycle and credential checks.
type UserService struct {
	store  repository.Store
	hasher security.PasswordHasher
	now    Clock
}

// NewUserService creates a new UserService.
func NewUserService(store repository.Store, hasher security.PasswordHasher) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		now:    systemClock,
	}
}

// WithClock replaces the time source used for timestamps.
func (s *UserService) WithClock(now Clock) *UserService {
	s.now = now
	return s
}

// CreateUserInput represents the information needed to create a user.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateUserInput replaces the mutable profile fields. An empty Password keeps
// the stored hash.
type UpdateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Create registers a new active user with the USER role.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, invalid("Email is required")
	}
	if input.Password == "" {
		return nil, invalid("Password is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := checkUnique(ctx, tx.Users(), username, email); err != nil {
			return err
		}

		hash, err := s.hasher.Hash([]byte(input.Password))
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		now := s.now()
		user = &models.User{
			Username:  username,
			Email:     email,
			Password:  string(hash),
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Role:      models.RoleUser,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID returns nil, nil when no user has the id.
func (s *UserService) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	return lookup(s.store.Users().FindByID(ctx, id))
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return lookup(s.store.Users().FindByUsername(ctx, username))
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return lookup(s.store.Users().FindByEmail(ctx, email))
}

// ListActive returns every user that has not been deactivated.
func (s *UserService) ListActive(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update overwrites the profile of user id. Uniqueness is rechecked only for
// the username or email that actually change.
func (s *UserService) Update(ctx context.Context, id uint64, input UpdateUserInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}
	if input.Email == "" {
		return nil, invalid("Email is required")
	}
	if input.Password != "" {
		if err := validatePassword(input.Password); err != nil {
			return nil, err
		}
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = findUser(ctx, tx, id)
		if err != nil {
			return err
		}

		if input.Username != user.Username {
			if err := uniqueUsername(ctx, tx.Users(), input.Username); err != nil {
				return err
			}
		}
		if input.Email != user.Email {
			if err := uniqueEmail(ctx, tx.Users(), input.Email); err != nil {
				return err
			}
		}

		user.Username = input.Username
		user.Email = input.Email
		user.FirstName = input.FirstName
		user.LastName = input.LastName
		if input.Password != "" {
			hash, err := s.hasher.Hash([]byte(input.Password))
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.Password = string(hash)
		}
		user.UpdatedAt = s.now()

		if err := tx.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes a user.
func (s *UserService) Deactivate(ctx context.Context, id uint64) (*models.User, error) {
	return s.mutate(ctx, id, func(u *models.User) { u.IsActive = false })
}

func (s *UserService) Activate(ctx context.Context, id uint64) (*models.User, error) {
	return s.mutate(ctx, id, func(u *models.User) { u.IsActive = true })
}

func (s *UserService) UpdateRole(ctx context.Context, id uint64, role models.UserRole) (*models.User, error) {
	if !role.IsValid() {
		return nil, invalid("Invalid role: %s", role)
	}
	return s.mutate(ctx, id, func(u *models.User) { u.Role = role })
}

func (s *UserService) mutate(ctx context.Context, id uint64, apply func(*models.User)) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = findUser(ctx, tx, id)
		if err != nil {
			return err
		}
		apply(user)
		user.UpdatedAt = s.now()
		if err := tx.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateCredentials reports whether username names an active user whose
// password matches. Unknown users and mismatches are not errors.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (bool, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if user == nil || !user.IsActive {
		return false, nil
	}
	if err := s.hasher.Compare([]byte(user.Password), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		return invalid("Username is required")
	case n < constants.MinUsernameLength || n > constants.MaxUsernameLength:
		return invalid("Username must be between %d and %d characters", constants.MinUsernameLength, constants.MaxUsernameLength)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < constants.MinPasswordLength {
		return invalid("Password must be at least %d characters", constants.MinPasswordLength)
	}
	return nil
}

func findUser(ctx context.Context, tx repository.Store, id uint64) (*models.User, error) {
	user, err := tx.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, UserNotFound(id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func checkUnique(ctx context.Context, users repository.UserRepository, username, email string) error {
	if err := uniqueUsername(ctx, users, username); err != nil {
		return err
	}
	return uniqueEmail(ctx, users, email)
}

func uniqueUsername(ctx context.Context, users repository.UserRepository, username string) error {
	exists, err := users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return duplicateKey("Username already exists: %s", username)
	}
	return nil
}

func uniqueEmail(ctx context.Context, users repository.UserRepository, email string) error {
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return duplicateKey("Email already exists: %s", email)
	}
	return nil
}

// lookup turns a repository miss into an empty result.
func lookup[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup failed: %w", err)
	}
	return v, nil
}
