package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type UserRole string

const (
	RoleUser      UserRole = "USER"
	RoleAdmin     UserRole = "ADMIN"
	RoleModerator UserRole = "MODERATOR"
)

var userRoleDisplayNames = map[UserRole]string{
	RoleUser:      "User",
	RoleAdmin:     "Administrator",
	RoleModerator: "Moderator",
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	_, ok := userRoleDisplayNames[r]
	return ok
}

func (r UserRole) DisplayName() string {
	return userRoleDisplayNames[r]
}

// ParseUserRole converts s to a UserRole, rejecting unknown values.
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("%w: role %q", ErrUnknownEnumValue, s)
	}
	return role, nil
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUserRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName  string    `gorm:"type:varchar(100)" json:"lastName"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'USER';check:chk_users_role,role IN ('USER','ADMIN','MODERATOR')" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
