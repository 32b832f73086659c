package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mtlprog/complytrack/internal/domain"
)

type contextKey string

const (
	// ContextKeyActor is the key for storing the request actor in context.
	ContextKeyActor contextKey = "actor"
)

// UserLookup resolves API tokens to users.
type UserLookup interface {
	GetByToken(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware handles Bearer token authentication.
type AuthMiddleware struct {
	users UserLookup
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
	}
}

// Authenticate validates the Bearer token and attaches the user's Actor to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		user, err := m.users.GetByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			slog.Error("failed to look up user by token", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		if !user.IsActive {
			http.Error(w, "user inactive", http.StatusUnauthorized)
			return
		}

		ctx := WithActor(r.Context(), user.Actor())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor returns a copy of ctx carrying the actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ContextKeyActor, actor)
}

// GetActorFromContext retrieves the authenticated actor from request context.
func GetActorFromContext(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctx.Value(ContextKeyActor).(domain.Actor)
	if !ok || actor.ID == "" {
		return domain.Actor{}, domain.ErrMissingActor
	}
	return actor, nil
}
