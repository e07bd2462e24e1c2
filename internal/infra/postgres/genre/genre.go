package infra_postgres_genre

import (
	"context"

	"github.com/google/uuid"
	common "github.com/humanbelnik/catalog/internal/infra/postgres/common"
	tx "github.com/humanbelnik/catalog/internal/infra/postgres/tx"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/jmoiron/sqlx"
)

const table = "genres"

var (
	search = common.Search{
		Table:       table,
		Columns:     "id, name, is_active, created_at",
		SearchField: "name",
		OrderFields: map[string]string{
			"name":       "name",
			"created_at": "created_at",
		},
	}

	categories = common.Relation{
		Table:    "genres_categories",
		OwnerCol: "genre_id",
		OtherCol: "category_id",
	}
)

type Repository struct {
	db *sqlx.DB
	tx *tx.Transactor
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db, tx: tx.New(db)}
}

// Insert writes the genre and its category links in one transaction, joining
// the caller's transaction when ctx carries one.
func (r *Repository) Insert(ctx context.Context, g *model.Genre) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := tx.Conn(ctx, r.db)
		query := `
			INSERT INTO genres (id, name, is_active, created_at)
			VALUES (:id, :name, :is_active, :created_at)
		`
		if _, err := sqlx.NamedExecContext(ctx, conn, query, FromDomain(g)); err != nil {
			return common.Wrap("insert genre", err)
		}
		return categories.Insert(ctx, conn, g.ID, g.Categories)
	})
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	conn := tx.Conn(ctx, r.db)
	query := `
		SELECT id, name, is_active, created_at
		FROM genres
		WHERE id = $1
	`
	var g GenreDB
	if err := sqlx.GetContext(ctx, conn, &g, query, id); err != nil {
		return nil, common.Wrap("load genre", err)
	}

	links, err := categories.Load(ctx, conn, id)
	if err != nil {
		return nil, err
	}
	return g.ToDomain(links[id]), nil
}

// Update rewrites the row and replaces the category links wholesale.
func (r *Repository) Update(ctx context.Context, g *model.Genre) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := tx.Conn(ctx, r.db)
		query := `
			UPDATE genres
			SET name = :name, is_active = :is_active
			WHERE id = :id
		`
		res, err := sqlx.NamedExecContext(ctx, conn, query, FromDomain(g))
		if err != nil {
			return common.Wrap("update genre", err)
		}
		if err := common.ExpectAffected(res); err != nil {
			return err
		}
		return categories.Replace(ctx, conn, g.ID, g.Categories)
	})
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := tx.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return common.Wrap("delete genre", err)
	}
	return common.ExpectAffected(res)
}

func (r *Repository) Search(ctx context.Context, in model.SearchInput) (model.SearchOutput[*model.Genre], error) {
	conn := tx.Conn(ctx, r.db)
	in = in.Normalize("name", search.Keys()...)
	rows, total, err := common.Run[GenreDB](ctx, conn, search, in)
	if err != nil {
		return model.SearchOutput[*model.Genre]{}, err
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	links, err := categories.Load(ctx, conn, ids...)
	if err != nil {
		return model.SearchOutput[*model.Genre]{}, err
	}

	items := make([]*model.Genre, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain(links[rows[i].ID])
	}
	return model.SearchOutput[*model.Genre]{
		Page:    in.Page,
		PerPage: in.PerPage,
		Total:   total,
		Items:   items,
	}, nil
}

func (r *Repository) IDsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return common.ExistingIDs(ctx, tx.Conn(ctx, r.db), table, ids)
}
