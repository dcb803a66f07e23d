// internal/adapters/out/firestore/membership_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	memdom "storefront/internal/domain/membership"
)

// MembershipRepositoryFS implements membership.Repository using Firestore.
//
// Collection design:
// - collection: users
// - docId: userId (docId is the source of truth)
// - fields: cart([]string), wishlist([]string), compare([]string)
//
// The list arrays live on the same user doc as the identity fields; this
// adapter only ever touches the three array fields.
type MembershipRepositoryFS struct {
	Client *firestore.Client
}

func NewMembershipRepositoryFS(client *firestore.Client) *MembershipRepositoryFS {
	return &MembershipRepositoryFS{Client: client}
}

func (r *MembershipRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

// Get reads the raw array; a missing doc or field reads as empty.
func (r *MembershipRepositoryFS) Get(ctx context.Context, userID string, list memdom.List) ([]string, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("membership_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("membership_repository_fs: userID is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	return listFromSnapshot(snap, list), nil
}

// Mutate runs a read-modify-write on the array inside a transaction, so two
// rapid taps on "+" serialize instead of losing one increment.
func (r *MembershipRepositoryFS) Mutate(ctx context.Context, userID string, list memdom.List, fn func(ids []string) ([]string, error)) ([]string, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("membership_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("membership_repository_fs: userID is empty")
	}

	ref := r.col().Doc(uid)
	var result []string
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current []string
		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			current = listFromSnapshot(snap, list)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		result = next
		return tx.Set(ref, map[string]any{list.Field(): normalizeIDs(next)}, firestore.MergeAll)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddUnique maps to the atomic array-union primitive.
func (r *MembershipRepositoryFS) AddUnique(ctx context.Context, userID string, list memdom.List, itemID string) error {
	if r == nil || r.Client == nil {
		return errors.New("membership_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	id := strings.TrimSpace(itemID)
	if uid == "" || id == "" {
		return errors.New("membership_repository_fs: userID and itemID are required")
	}
	_, err := r.col().Doc(uid).Set(ctx, map[string]any{
		list.Field(): firestore.ArrayUnion(id),
	}, firestore.MergeAll)
	return err
}

// RemoveValue maps to the atomic array-remove primitive (drops every
// occurrence).
func (r *MembershipRepositoryFS) RemoveValue(ctx context.Context, userID string, list memdom.List, itemID string) error {
	if r == nil || r.Client == nil {
		return errors.New("membership_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	id := strings.TrimSpace(itemID)
	if uid == "" || id == "" {
		return errors.New("membership_repository_fs: userID and itemID are required")
	}
	_, err := r.col().Doc(uid).Update(ctx, []firestore.Update{
		{Path: list.Field(), Value: firestore.ArrayRemove(id)},
	})
	if status.Code(err) == codes.NotFound {
		// missing doc means the list was already empty (idempotent)
		return nil
	}
	return err
}

// Clear resets the list to empty.
func (r *MembershipRepositoryFS) Clear(ctx context.Context, userID string, list memdom.List) error {
	if r == nil || r.Client == nil {
		return errors.New("membership_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("membership_repository_fs: userID is empty")
	}
	_, err := r.col().Doc(uid).Set(ctx, map[string]any{
		list.Field(): []string{},
	}, firestore.MergeAll)
	return err
}

func listFromSnapshot(snap *firestore.DocumentSnapshot, list memdom.List) []string {
	raw := snap.Data()
	if raw == nil {
		return nil
	}
	return asStringSlice(raw[list.Field()])
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	return out
}
