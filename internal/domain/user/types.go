package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role separates the two sides of the marketplace.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleProvider:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsProvider() bool {
	return r == RoleProvider
}
