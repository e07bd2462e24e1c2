package infra_postgres_genre

import (
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

type GenreDB struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

func (g *GenreDB) ToDomain(categories []uuid.UUID) *model.Genre {
	if categories == nil {
		categories = []uuid.UUID{}
	}
	return &model.Genre{
		ID:         g.ID,
		Name:       g.Name,
		IsActive:   g.IsActive,
		Categories: categories,
		CreatedAt:  g.CreatedAt,
	}
}

func FromDomain(g *model.Genre) GenreDB {
	return GenreDB{
		ID:        g.ID,
		Name:      g.Name,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
	}
}
