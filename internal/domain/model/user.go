package model

import (
	"strings"
	"time"
)

// Role controls access to admin operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered business customer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	CompanyName  string
	Phone        string
	TaxID        string
	Address      string
	Sector       string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile returns the identity attributes used for order attribution.
func (u User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// Registration carries signup form data.
type Registration struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
	Phone       string
	TaxID       string
	Address     string
	Sector      string
}

// UserProfile is the typed identity of an authenticated user.
type UserProfile struct {
	ID       string
	Email    string
	FullName string
	Role     Role
}

// Valid reports whether the profile carries every attribute an order needs.
func (p UserProfile) Valid() bool {
	return strings.TrimSpace(p.ID) != "" && strings.TrimSpace(p.Email) != ""
}

// IsAdmin reports whether the profile has admin role.
func (p UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
