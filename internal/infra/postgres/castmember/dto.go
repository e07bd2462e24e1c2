package infra_postgres_castmember

import (
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

type CastMemberDB struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Type      int       `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

func (c *CastMemberDB) ToDomain() *model.CastMember {
	return &model.CastMember{
		ID:        c.ID,
		Name:      c.Name,
		Type:      model.CastMemberType(c.Type),
		CreatedAt: c.CreatedAt,
	}
}

func FromDomain(c *model.CastMember) CastMemberDB {
	return CastMemberDB{
		ID:        c.ID,
		Name:      c.Name,
		Type:      int(c.Type),
		CreatedAt: c.CreatedAt,
	}
}
