package infra_postgres_category

import (
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

type CategoryDB struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

func (c *CategoryDB) ToDomain() *model.Category {
	return &model.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

func FromDomain(c *model.Category) CategoryDB {
	return CategoryDB{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}
