// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
)

var (
	ErrNotFound    = errors.New("user: not found")
	ErrInvalidRole = errors.New("user: invalid role")
)

// Role is the storefront-facing role of an account.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buyer":
		return RoleBuyer, nil
	case "seller":
		return RoleSeller, nil
	case "admin":
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

// User is the identity read model consumed by the core. Sign-up/sign-in
// live elsewhere; this package only answers "who is calling, with what role".
// The same user doc also carries the membership list arrays (see membership
// package), which this read model deliberately ignores.
type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"displayName" firestore:"displayName"`
	Role        Role   `json:"role" firestore:"role"`
}

// CanSell reports whether the user may manage inventory and orders.
func (u User) CanSell() bool {
	return u.Role == RoleSeller || u.Role == RoleAdmin
}
