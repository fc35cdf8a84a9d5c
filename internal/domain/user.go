package domain

import "time"

// Role discriminates the two kinds of identities in the system.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain entity for a regular account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Admin is a separately provisioned account with elevated rights.
// Admins have no username of their own; the email stands in for it.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the resolved caller: a tagged variant over User/Admin.
// Role is the discriminant; exactly one of User/Admin is set.
type Identity struct {
	Role  Role
	User  *User
	Admin *Admin
}

// ID returns the id of whichever variant is set.
func (i Identity) ID() int64 {
	if i.Role == RoleAdmin && i.Admin != nil {
		return i.Admin.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return 0
}

// Email returns the email of whichever variant is set.
func (i Identity) Email() string {
	if i.Role == RoleAdmin && i.Admin != nil {
		return i.Admin.Email
	}
	if i.User != nil {
		return i.User.Email
	}
	return ""
}

// Username returns the display name: the user's username, or the
// admin's email (admins carry no username).
func (i Identity) Username() string {
	if i.Role == RoleAdmin && i.Admin != nil {
		return i.Admin.Email
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}

// CreatedAt returns the creation time of whichever variant is set.
func (i Identity) CreatedAt() time.Time {
	if i.Role == RoleAdmin && i.Admin != nil {
		return i.Admin.CreatedAt
	}
	if i.User != nil {
		return i.User.CreatedAt
	}
	return time.Time{}
}
