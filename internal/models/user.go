package models

import "time"

type UserRole string

const (
	// Creators may upload photos; consumers only browse and react.
	UserRoleCreator  UserRole = "creator"
	UserRoleConsumer UserRole = "consumer"
)

// ValidRole reports whether role is one of the recognized user roles.
func ValidRole(role UserRole) bool {
	return role == UserRoleCreator || role == UserRoleConsumer
}

type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Role         UserRole
	CreatedAt    time.Time
}

func (u User) IsCreator() bool {
	return u.Role == UserRoleCreator
}
