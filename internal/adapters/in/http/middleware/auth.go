// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	userdom "storefront/internal/domain/user"
)

// FirebaseAuthClient aliases the firebase auth client so router deps can
// take *middleware.FirebaseAuthClient.
type FirebaseAuthClient = fbauth.Client

// context keys use a private type to avoid collisions (SA1029).
type ctxKey struct{ name string }

var (
	ctxKeyUser = ctxKey{name: "currentUser"}
	ctxKeyUID  = ctxKey{name: "uid"}
)

// Auth verifies
//
//   - Authorization: Bearer <ID_TOKEN>
//
// and puts the resolved user (and uid) into the request context. A valid
// token with no user doc still passes with a buyer-role stand-in, so a
// first-time visitor can fill a cart before their profile doc exists.
type Auth struct {
	FirebaseAuth *FirebaseAuthClient
	Users        userdom.Repository
}

func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil || m.Users == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		usr, err := m.Users.GetByID(r.Context(), uid)
		if err != nil {
			http.Error(w, "user lookup failed", http.StatusInternalServerError)
			return
		}
		if usr == nil {
			usr = &userdom.User{ID: uid, Role: userdom.RoleBuyer}
			if emailRaw, ok := token.Claims["email"]; ok {
				if e, ok2 := emailRaw.(string); ok2 {
					usr.Email = strings.TrimSpace(e)
				}
			}
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, usr)
		ctx = context.WithValue(ctx, ctxKeyUID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated user injected by Auth.
func CurrentUser(r *http.Request) (*userdom.User, bool) {
	v := r.Context().Value(ctxKeyUser)
	if v == nil {
		return nil, false
	}
	u, ok := v.(*userdom.User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

// CurrentUID returns the verified Firebase UID.
func CurrentUID(r *http.Request) (string, bool) {
	v := r.Context().Value(ctxKeyUID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}
