package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the slice of pgx used by Unique. *pgx.Conn, *pgxpool.Pool and
// pgx.Tx all satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Unique rejects values already stored in table.column. Lookup failures are
// returned as errors, not as validation messages. Table may be schema
// qualified ("app.users").
func Unique(db Querier, table, column, message string) Validator {
	ident := pgx.Identifier(strings.Split(strings.TrimSpace(table), "."))
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		ident.Sanitize(),
		pgx.Identifier{strings.TrimSpace(column)}.Sanitize(),
	)
	message = orDefault(message, "This value is already taken.")

	return Func(func(ctx context.Context, _ Values, field Target) error {
		if db == nil {
			return fmt.Errorf("validate: unique %s.%s: database is nil", table, column)
		}
		var exists bool
		if err := db.QueryRow(ctx, query, text(field)).Scan(&exists); err != nil {
			return fmt.Errorf("validate: unique %s.%s: %w", table, column, err)
		}
		if exists {
			return &Error{Message: message}
		}
		return nil
	})
}
