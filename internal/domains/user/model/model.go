package model

import (
	"strings"
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

type User struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Phone     *string    `db:"phone"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}

// HasPhone reports whether SMS can reach the user.
func (u User) HasPhone() bool {
	return u.Phone != nil && *u.Phone != ""
}

// NormalizeEmail is applied before an email is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
