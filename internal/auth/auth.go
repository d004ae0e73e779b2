// Package auth resolves the requesting owner. There is no real
// authentication: every request maps to a fixed demo owner. The middleware
// shape matches what a token-based authenticator would plug into.
package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type User struct {
	OwnerID uuid.UUID
}

type userKeyType struct{}

var userKey userKeyType

// DefaultOwnerID identifies the demo owner all requests resolve to.
var DefaultOwnerID = uuid.MustParse("91b2b0f1-5a8e-4c5f-9b71-04fa0ccf0001")

func NewUserContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok
}

func MustHaveUser(ctx context.Context) User {
	u, ok := UserFromContext(ctx)
	if !ok {
		panic("no user in context")
	}
	return u
}

// Authenticator injects the stub owner into the request context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := NewUserContext(r.Context(), User{OwnerID: DefaultOwnerID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
