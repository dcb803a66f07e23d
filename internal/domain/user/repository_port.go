// internal/domain/user/repository_port.go
package user

import "context"

// Repository reads identity docs.
//
// Storage (Firestore):
// - collection: users
// - docId: uid (from the identity provider)
type Repository interface {
	// GetByID returns (nil, nil) if not found (nil policy).
	GetByID(ctx context.Context, id string) (*User, error)
}
