package infra_postgres_category

import (
	"context"

	"github.com/google/uuid"
	common "github.com/humanbelnik/catalog/internal/infra/postgres/common"
	tx "github.com/humanbelnik/catalog/internal/infra/postgres/tx"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/jmoiron/sqlx"
)

const table = "categories"

var search = common.Search{
	Table:       table,
	Columns:     "id, name, description, is_active, created_at",
	SearchField: "name",
	OrderFields: map[string]string{
		"name":       "name",
		"created_at": "created_at",
	},
}

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO categories (id, name, description, is_active, created_at)
		VALUES (:id, :name, :description, :is_active, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, tx.Conn(ctx, r.db), query, FromDomain(c)); err != nil {
		return common.Wrap("insert category", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at
		FROM categories
		WHERE id = $1
	`
	var c CategoryDB
	if err := sqlx.GetContext(ctx, tx.Conn(ctx, r.db), &c, query, id); err != nil {
		return nil, common.Wrap("load category", err)
	}
	return c.ToDomain(), nil
}

func (r *Repository) Update(ctx context.Context, c *model.Category) error {
	query := `
		UPDATE categories
		SET name = :name, description = :description, is_active = :is_active
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, tx.Conn(ctx, r.db), query, FromDomain(c))
	if err != nil {
		return common.Wrap("update category", err)
	}
	return common.ExpectAffected(res)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := tx.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return common.Wrap("delete category", err)
	}
	return common.ExpectAffected(res)
}

func (r *Repository) Search(ctx context.Context, in model.SearchInput) (model.SearchOutput[*model.Category], error) {
	in = in.Normalize("name", search.Keys()...)
	rows, total, err := common.Run[CategoryDB](ctx, tx.Conn(ctx, r.db), search, in)
	if err != nil {
		return model.SearchOutput[*model.Category]{}, err
	}

	items := make([]*model.Category, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return model.SearchOutput[*model.Category]{
		Page:    in.Page,
		PerPage: in.PerPage,
		Total:   total,
		Items:   items,
	}, nil
}

// IDsByIDs returns which of ids exist.
func (r *Repository) IDsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return common.ExistingIDs(ctx, tx.Conn(ctx, r.db), table, ids)
}
