// Package user holds operator accounts for the HTTP API and CLI.
package user

import "time"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User is an operator account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
