package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/complytrack/internal/domain"
)

var userColumns = []string{"id", "username", "role", "token", "is_active", "permissions", "created_at"}

// UserRepository handles database operations for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u     domain.User
		perms []string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Role, &u.Token, &u.IsActive, &perms, &u.CreatedAt); err != nil {
		return nil, storeError("scan user", err, domain.ErrUserNotFound)
	}
	for _, p := range perms {
		u.Permissions = append(u.Permissions, domain.Capability(p))
	}
	return &u, nil
}

// GetByToken finds a user by API token.
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByToken query: %w", err)
	}
	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for user %s: %w", id, err)
	}

	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return u, err
}

// Create inserts a user. The ID and creation time are assigned by the database.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	perms := make([]string, len(u.Permissions))
	for i, p := range u.Permissions {
		perms[i] = string(p)
	}

	query, args, err := psql.
		Insert("users").
		Columns("username", "role", "token", "is_active", "permissions").
		Values(u.Username, u.Role, u.Token, u.IsActive, perms).
		Suffix("RETURNING id, username, role, token, is_active, permissions, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for user: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}
