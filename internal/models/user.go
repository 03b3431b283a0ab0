// Package models defines the records persisted by authkeeper: users,
// failed-login counters and sessions.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the account role stored next to the password hash.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
)

// ParseRole validates a role name. An empty name means RoleUser.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin, RoleAnalyst:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User is a registered account. Usernames are case-sensitive and unique.
type User struct {
	UserName     string
	PasswordHash string
	Role         Role
}

// ValidateUserName rejects names the users file cannot store verbatim:
// blank names, surrounding whitespace, and the separator, quote or line
// break characters.
func ValidateUserName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("username is empty")
	case strings.TrimSpace(name) != name:
		return errors.New("username has leading or trailing whitespace")
	case strings.ContainsAny(name, ",\"\r\n"):
		return errors.New("username contains a comma, quote or line break")
	}
	return nil
}
