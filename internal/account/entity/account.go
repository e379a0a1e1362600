package entity

import (
	"strings"
	"time"
)

// UnusablePasswordPrefix marks a stored credential that can never verify.
const UnusablePasswordPrefix = "!"

// Account represents one registered user in the `accounts` table.
// Email is the sole login identifier.
type Account struct {
	ID               string     `db:"id"`
	Email            string     `db:"email"`
	PasswordHash     string     `db:"password_hash"`
	FirstName        string     `db:"first_name"`
	LastName         string     `db:"last_name"`
	IsStaff          bool       `db:"is_staff"`
	IsActive         bool       `db:"is_active"`
	IsSuperuser      bool       `db:"is_superuser"`
	DateJoined       time.Time  `db:"date_joined"`
	LastLogin        *time.Time `db:"last_login"`
	ConfirmationCode string     `db:"confirmation_code"`
}

// FullName joins first and last name with a single space. The space is kept
// when either side is empty.
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// ShortName returns the first name.
func (a *Account) ShortName() string {
	return a.FirstName
}

// HasUsablePassword reports whether the stored credential can ever verify.
func (a *Account) HasUsablePassword() bool {
	return a.PasswordHash != "" && !strings.HasPrefix(a.PasswordHash, UnusablePasswordPrefix)
}

// Privilege is a derived view over the independent staff/superuser flags.
type Privilege int

const (
	Ordinary Privilege = iota
	Staff
	Superuser
)

func (p Privilege) String() string {
	switch p {
	case Staff:
		return "staff"
	case Superuser:
		return "superuser"
	default:
		return "ordinary"
	}
}

// Privilege collapses the flags into a single level; superuser wins over staff.
func (a *Account) Privilege() Privilege {
	switch {
	case a.IsSuperuser:
		return Superuser
	case a.IsStaff:
		return Staff
	default:
		return Ordinary
	}
}
