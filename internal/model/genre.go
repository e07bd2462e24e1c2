package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const GenreNameMaxLength = 255

type Genre struct {
	ID         uuid.UUID
	Name       string
	IsActive   bool
	Categories []uuid.UUID
	CreatedAt  time.Time
}

func NewGenre(name string, isActive bool) (*Genre, error) {
	g := &Genre{
		ID:         uuid.New(),
		Name:       name,
		IsActive:   isActive,
		Categories: []uuid.UUID{},
		CreatedAt:  Now(),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genre) Update(name string) error {
	candidate := *g
	candidate.Name = name
	if err := candidate.Validate(); err != nil {
		return err
	}
	g.Name = name
	return nil
}

func (g *Genre) Activate() {
	g.IsActive = true
}

func (g *Genre) Deactivate() {
	g.IsActive = false
}

func (g *Genre) AddCategory(id uuid.UUID) {
	g.Categories = appendUnique(g.Categories, id)
}

func (g *Genre) RemoveCategory(id uuid.UUID) {
	g.Categories = remove(g.Categories, id)
}

func (g *Genre) RemoveAllCategories() {
	g.Categories = []uuid.UUID{}
}

func (g *Genre) ReplaceCategories(ids []uuid.UUID) {
	g.Categories = dedup(ids)
}

func (g *Genre) Validate() error {
	var n Notification
	switch {
	case strings.TrimSpace(g.Name) == "":
		n.Add("name", "should not be empty")
	case len([]rune(g.Name)) > GenreNameMaxLength:
		n.Add("name", fmt.Sprintf("should be less or equal %d characters long", GenreNameMaxLength))
	}
	return n.Err()
}
