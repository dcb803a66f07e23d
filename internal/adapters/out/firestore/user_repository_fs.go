// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "storefront/internal/domain/user"
)

// UserRepositoryFS implements user.Repository using Firestore.
//
// Collection design:
// - collection: users
// - docId: uid from the identity provider (docId is the source of truth)
//
// The doc also carries the membership list arrays; those are owned by
// MembershipRepositoryFS and ignored here.
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(id)
	if uid == "" {
		return nil, errors.New("user_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	raw := snap.Data()
	if raw == nil {
		raw = map[string]any{}
	}

	u := userdom.User{
		ID:          uid,
		Email:       strings.TrimSpace(asString(raw["email"])),
		DisplayName: strings.TrimSpace(asString(raw["displayName"])),
	}
	role, err := userdom.ParseRole(asString(raw["role"]))
	if err != nil {
		// docs created before roles existed default to buyer
		role = userdom.RoleBuyer
	}
	u.Role = role
	return &u, nil
}
