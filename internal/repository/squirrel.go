package repository

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mtlprog/complytrack/internal/domain"
)

// psql is the shared Squirrel statement builder configured for PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// storeError wraps a driver error, mapping missing rows to notFound and
// context deadlines to domain.ErrTimeout.
func storeError(op string, err error, notFound error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows) && notFound != nil:
		return notFound
	case pgconn.Timeout(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
