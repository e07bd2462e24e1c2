package infra_postgres_castmember

import (
	"context"

	"github.com/google/uuid"
	common "github.com/humanbelnik/catalog/internal/infra/postgres/common"
	tx "github.com/humanbelnik/catalog/internal/infra/postgres/tx"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/jmoiron/sqlx"
)

const table = "cast_members"

var search = common.Search{
	Table:       table,
	Columns:     "id, name, type, created_at",
	SearchField: "name",
	OrderFields: map[string]string{
		"name":       "name",
		"type":       "type",
		"created_at": "created_at",
	},
}

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, c *model.CastMember) error {
	query := `
		INSERT INTO cast_members (id, name, type, created_at)
		VALUES (:id, :name, :type, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, tx.Conn(ctx, r.db), query, FromDomain(c)); err != nil {
		return common.Wrap("insert cast member", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*model.CastMember, error) {
	query := `
		SELECT id, name, type, created_at
		FROM cast_members
		WHERE id = $1
	`
	var c CastMemberDB
	if err := sqlx.GetContext(ctx, tx.Conn(ctx, r.db), &c, query, id); err != nil {
		return nil, common.Wrap("load cast member", err)
	}
	return c.ToDomain(), nil
}

func (r *Repository) Update(ctx context.Context, c *model.CastMember) error {
	query := `
		UPDATE cast_members
		SET name = :name, type = :type
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, tx.Conn(ctx, r.db), query, FromDomain(c))
	if err != nil {
		return common.Wrap("update cast member", err)
	}
	return common.ExpectAffected(res)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := tx.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM cast_members WHERE id = $1`, id)
	if err != nil {
		return common.Wrap("delete cast member", err)
	}
	return common.ExpectAffected(res)
}

func (r *Repository) Search(ctx context.Context, in model.SearchInput) (model.SearchOutput[*model.CastMember], error) {
	in = in.Normalize("name", search.Keys()...)
	rows, total, err := common.Run[CastMemberDB](ctx, tx.Conn(ctx, r.db), search, in)
	if err != nil {
		return model.SearchOutput[*model.CastMember]{}, err
	}

	items := make([]*model.CastMember, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return model.SearchOutput[*model.CastMember]{
		Page:    in.Page,
		PerPage: in.PerPage,
		Total:   total,
		Items:   items,
	}, nil
}

func (r *Repository) IDsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return common.ExistingIDs(ctx, tx.Conn(ctx, r.db), table, ids)
}
