package infra_postgres_common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Wrap maps driver errors onto model errors and annotates the rest with op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", model.ErrDuplicate, pqErr.Constraint)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", model.ErrNotFound, pqErr.Constraint)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// ExpectAffected returns model.ErrNotFound when res touched no rows.
func ExpectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Search is a paged listing filtered by a case-insensitive term on one column.
type Search struct {
	Table       string
	Columns     string
	SearchField string
	// OrderFields maps public sort keys to SQL columns.
	OrderFields map[string]string
}

// Query renders the count and page statements for in, which must already be
// normalized against OrderFields.
func (s Search) Query(in model.SearchInput) (count string, page string, args []any) {
	var where string
	if in.Search != "" {
		where = fmt.Sprintf(" WHERE %s ILIKE $1", s.SearchField)
		args = append(args, "%"+escapeLike(in.Search)+"%")
	}

	column, ok := s.OrderFields[in.OrderBy]
	if !ok {
		column = "created_at"
	}
	dir := "ASC"
	if in.Order == model.OrderDesc {
		dir = "DESC"
	}

	count = fmt.Sprintf("SELECT COUNT(*) FROM %s%s", s.Table, where)
	page = fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d",
		s.Columns, s.Table, where, column, dir, dir, len(args)+1, len(args)+2)
	args = append(args, in.PerPage, in.Offset())
	return count, page, args
}

// Keys lists the public sort keys.
func (s Search) Keys() []string {
	keys := make([]string, 0, len(s.OrderFields))
	for k := range s.OrderFields {
		keys = append(keys, k)
	}
	return keys
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Run executes both statements produced by Query.
func Run[T any](ctx context.Context, q sqlx.QueryerContext, s Search, in model.SearchInput) ([]T, int, error) {
	countQuery, pageQuery, args := s.Query(in)

	var filterArgs []any
	if in.Search != "" {
		filterArgs = args[:1]
	}

	var total int
	if err := sqlx.GetContext(ctx, q, &total, countQuery, filterArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", s.Table, err)
	}

	rows := make([]T, 0, in.PerPage)
	if total == 0 {
		return rows, 0, nil
	}
	if err := sqlx.SelectContext(ctx, q, &rows, pageQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", s.Table, err)
	}
	return rows, total, nil
}

// ExistingIDs returns the subset of ids present in table.
func ExistingIDs(ctx context.Context, q sqlx.ExtContext, table string, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT id FROM %s WHERE id IN (?)", table), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	found := make([]uuid.UUID, 0, len(ids))
	if err := sqlx.SelectContext(ctx, q, &found, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query %s ids: %w", table, err)
	}
	return found, nil
}
