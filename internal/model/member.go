package model

import "time"

// Role is advisory only: it gates views in the UI and is carried in the
// token claims, but nothing in the core consults it.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Member is a person on the team roster.
type Member struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       Role       `json:"role"`
	Department Department `json:"department,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}
