// Package models defines the server-side domain records persisted in
// PostgreSQL and serialized on the REST API.
package models

import "time"

// Role values carried in the JWT and checked by the admin-only surface.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
