package infra_postgres_common

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Relation is a join table linking an owner aggregate to referenced ids.
type Relation struct {
	Table    string
	OwnerCol string
	OtherCol string
}

// Insert writes one join row per id.
func (rel Relation) Insert(ctx context.Context, e sqlx.ExtContext, owner uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", rel.Table, rel.OwnerCol, rel.OtherCol)
	for _, id := range ids {
		if _, err := e.ExecContext(ctx, query, owner, id); err != nil {
			return Wrap("insert into "+rel.Table, err)
		}
	}
	return nil
}

// Replace drops every join row of owner and writes ids.
func (rel Relation) Replace(ctx context.Context, e sqlx.ExtContext, owner uuid.UUID, ids []uuid.UUID) error {
	if err := rel.DeleteAll(ctx, e, owner); err != nil {
		return err
	}
	return rel.Insert(ctx, e, owner, ids)
}

func (rel Relation) DeleteAll(ctx context.Context, e sqlx.ExtContext, owner uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", rel.Table, rel.OwnerCol)
	if _, err := e.ExecContext(ctx, query, owner); err != nil {
		return Wrap("delete from "+rel.Table, err)
	}
	return nil
}

type relationRow struct {
	Owner uuid.UUID `db:"owner_id"`
	Other uuid.UUID `db:"other_id"`
}

// Load returns the referenced ids of every owner, keyed by owner. Owners
// without rows map to an empty slice.
func (rel Relation) Load(ctx context.Context, e sqlx.ExtContext, owners ...uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(owners))
	if len(owners) == 0 {
		return out, nil
	}
	for _, o := range owners {
		out[o] = []uuid.UUID{}
	}

	query, args, err := sqlx.In(fmt.Sprintf(
		"SELECT %s AS owner_id, %s AS other_id FROM %s WHERE %s IN (?)",
		rel.OwnerCol, rel.OtherCol, rel.Table, rel.OwnerCol,
	), owners)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []relationRow
	if err := sqlx.SelectContext(ctx, e, &rows, e.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", rel.Table, err)
	}
	for _, row := range rows {
		out[row.Owner] = append(out[row.Owner], row.Other)
	}
	return out, nil
}
