package infra_postgres_video

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	common "github.com/humanbelnik/catalog/internal/infra/postgres/common"
	tx "github.com/humanbelnik/catalog/internal/infra/postgres/tx"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	search = common.Search{
		Table:       "videos",
		Columns:     columns,
		SearchField: "title",
		OrderFields: map[string]string{
			"title":         "title",
			"created_at":    "created_at",
			"year_launched": "year_launched",
			"duration":      "duration",
		},
	}

	videoCategories = common.Relation{
		Table:    "videos_categories",
		OwnerCol: "video_id",
		OtherCol: "category_id",
	}
	videoGenres = common.Relation{
		Table:    "videos_genres",
		OwnerCol: "video_id",
		OtherCol: "genre_id",
	}
	videoCastMembers = common.Relation{
		Table:    "videos_cast_members",
		OwnerCol: "video_id",
		OtherCol: "cast_member_id",
	}
)

type Repository struct {
	db *sqlx.DB
	tx *tx.Transactor
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db, tx: tx.New(db)}
}

// Insert writes the video row and one join row per related id. It joins the
// transaction carried by ctx, so commit belongs to the caller's unit of work.
func (r *Repository) Insert(ctx context.Context, v *model.Video) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := tx.Conn(ctx, r.db)
		query := `
			INSERT INTO videos (` + columns + `)
			VALUES (:id, :title, :description, :year_launched, :opened, :published, :duration, :rating,
				:created_at, :version, :thumb_path, :thumb_half_path, :banner_path,
				:media_file_path, :media_encoded_path, :media_status,
				:trailer_file_path, :trailer_encoded_path, :trailer_status)
		`
		if _, err := sqlx.NamedExecContext(ctx, conn, query, FromDomain(v)); err != nil {
			return common.Wrap("insert video", err)
		}
		if err := videoCategories.Insert(ctx, conn, v.ID, v.Categories); err != nil {
			return err
		}
		if err := videoGenres.Insert(ctx, conn, v.ID, v.Genres); err != nil {
			return err
		}
		return videoCastMembers.Insert(ctx, conn, v.ID, v.CastMembers)
	})
}

// Update writes every column guarded by the version the aggregate was loaded
// with, then replaces all three relation sets. On success v.Version is bumped.
func (r *Repository) Update(ctx context.Context, v *model.Video) error {
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := tx.Conn(ctx, r.db)
		query := `
			UPDATE videos
			SET title = :title, description = :description, year_launched = :year_launched,
				opened = :opened, published = :published, duration = :duration, rating = :rating,
				thumb_path = :thumb_path, thumb_half_path = :thumb_half_path, banner_path = :banner_path,
				media_file_path = :media_file_path, media_encoded_path = :media_encoded_path,
				media_status = :media_status, trailer_file_path = :trailer_file_path,
				trailer_encoded_path = :trailer_encoded_path, trailer_status = :trailer_status,
				version = version + 1
			WHERE id = :id AND version = :version
		`
		res, err := sqlx.NamedExecContext(ctx, conn, query, FromDomain(v))
		if err != nil {
			return common.Wrap("update video", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			return r.missingOrStale(ctx, conn, v.ID)
		}

		if err := videoCategories.Replace(ctx, conn, v.ID, v.Categories); err != nil {
			return err
		}
		if err := videoGenres.Replace(ctx, conn, v.ID, v.Genres); err != nil {
			return err
		}
		return videoCastMembers.Replace(ctx, conn, v.ID, v.CastMembers)
	})
	if err != nil {
		return err
	}
	v.Version++
	return nil
}

func (r *Repository) missingOrStale(ctx context.Context, conn sqlx.QueryerContext, id uuid.UUID) error {
	var exists bool
	if err := sqlx.GetContext(ctx, conn, &exists, `SELECT EXISTS (SELECT 1 FROM videos WHERE id = $1)`, id); err != nil {
		return common.Wrap("check video", err)
	}
	if exists {
		return model.ErrConflict
	}
	return model.ErrNotFound
}

// Delete removes the join rows and the video row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := tx.Conn(ctx, r.db)
		for _, rel := range []common.Relation{videoCategories, videoGenres, videoCastMembers} {
			if err := rel.DeleteAll(ctx, conn, id); err != nil {
				return err
			}
		}
		res, err := conn.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
		if err != nil {
			return common.Wrap("delete video", err)
		}
		return common.ExpectAffected(res)
	})
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	conn := tx.Conn(ctx, r.db)
	var row VideoDB
	if err := sqlx.GetContext(ctx, conn, &row, `SELECT `+columns+` FROM videos WHERE id = $1`, id); err != nil {
		return nil, common.Wrap("load video", err)
	}

	rel, err := r.loadRelations(ctx, conn, id)
	if err != nil {
		return nil, err
	}
	return row.ToDomain(rel[id]), nil
}

func (r *Repository) Search(ctx context.Context, in model.SearchInput) (model.SearchOutput[*model.Video], error) {
	conn := tx.Conn(ctx, r.db)
	in = in.Normalize("created_at", search.Keys()...)
	rows, total, err := common.Run[VideoDB](ctx, conn, search, in)
	if err != nil {
		return model.SearchOutput[*model.Video]{}, err
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	rel, err := r.loadRelations(ctx, conn, ids...)
	if err != nil {
		return model.SearchOutput[*model.Video]{}, err
	}

	items := make([]*model.Video, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain(rel[rows[i].ID])
	}
	return model.SearchOutput[*model.Video]{
		Page:    in.Page,
		PerPage: in.PerPage,
		Total:   total,
		Items:   items,
	}, nil
}

func (r *Repository) loadRelations(ctx context.Context, conn sqlx.ExtContext, ids ...uuid.UUID) (map[uuid.UUID]relations, error) {
	out := make(map[uuid.UUID]relations, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cats, err := videoCategories.Load(ctx, conn, ids...)
	if err != nil {
		return nil, err
	}
	genres, err := videoGenres.Load(ctx, conn, ids...)
	if err != nil {
		return nil, err
	}
	cast, err := videoCastMembers.Load(ctx, conn, ids...)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		out[id] = relations{
			categories:  cats[id],
			genres:      genres[id],
			castMembers: cast[id],
		}
	}
	return out, nil
}
