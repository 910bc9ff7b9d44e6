package model

import "time"

// Role distinguishes the two caller kinds: customers create and own orders,
// staff (technicians) claim and fulfill them.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleStaff
}

// User describes a registered account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Phone        string
	CreatedAt    time.Time
}

// Actor is the authenticated caller identity resolved by the auth layer.
type Actor struct {
	ID   int64
	Role Role
}
