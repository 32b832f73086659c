package memstore

import (
	"context"

	"github.com/mtlprog/complytrack/internal/domain"
)

// GetByToken finds a user by API token.
func (s *Store) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Token == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
