package usecase_genre

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

var ErrInternal = errors.New("internal error")

//go:generate mockery --name=Repository --output=mocks/genre/repository --outpkg=repo_mocks
type Repository interface {
	Insert(ctx context.Context, g *model.Genre) error
	Get(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	Update(ctx context.Context, g *model.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, in model.SearchInput) (model.SearchOutput[*model.Genre], error)
}

//go:generate mockery --name=CategoryFinder --output=mocks/genre/repository --outpkg=repo_mocks
type CategoryFinder interface {
	IDsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

type CreateInput struct {
	Name        string
	IsActive    bool
	CategoryIDs []uuid.UUID
}

// UpdateInput leaves nil fields unchanged. A non-nil empty CategoryIDs
// clears the set.
type UpdateInput struct {
	ID          uuid.UUID
	Name        *string
	IsActive    *bool
	CategoryIDs []uuid.UUID
}

type Output struct {
	ID          uuid.UUID
	Name        string
	IsActive    bool
	CategoryIDs []uuid.UUID
	CreatedAt   time.Time
}

func toOutput(g *model.Genre) *Output {
	return &Output{
		ID:          g.ID,
		Name:        g.Name,
		IsActive:    g.IsActive,
		CategoryIDs: g.Categories,
		CreatedAt:   g.CreatedAt,
	}
}

type Usecase struct {
	repository Repository
	categories CategoryFinder
}

func New(repository Repository, categories CategoryFinder) *Usecase {
	return &Usecase{
		repository: repository,
		categories: categories,
	}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Output, error) {
	var n model.Notification

	g, err := model.NewGenre(in.Name, in.IsActive)
	n.Merge("genre", err)
	if err := u.checkCategories(ctx, &n, in.CategoryIDs); err != nil {
		return nil, err
	}
	if err := n.Err(); err != nil {
		return nil, err
	}

	g.ReplaceCategories(in.CategoryIDs)
	if err := u.repository.Insert(ctx, g); err != nil {
		return nil, wrap(err)
	}
	return toOutput(g), nil
}

func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*Output, error) {
	g, err := u.repository.Get(ctx, in.ID)
	if err != nil {
		return nil, wrap(err)
	}

	var n model.Notification
	if in.Name != nil {
		n.Merge("name", g.Update(*in.Name))
	}
	if in.CategoryIDs != nil {
		if err := u.checkCategories(ctx, &n, in.CategoryIDs); err != nil {
			return nil, err
		}
	}
	if err := n.Err(); err != nil {
		return nil, err
	}

	if in.CategoryIDs != nil {
		g.ReplaceCategories(in.CategoryIDs)
	}
	if in.IsActive != nil {
		if *in.IsActive {
			g.Activate()
		} else {
			g.Deactivate()
		}
	}

	if err := u.repository.Update(ctx, g); err != nil {
		return nil, wrap(err)
	}
	return toOutput(g), nil
}

func (u *Usecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repository.Delete(ctx, id); err != nil {
		return wrap(err)
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, id uuid.UUID) (*Output, error) {
	g, err := u.repository.Get(ctx, id)
	if err != nil {
		return nil, wrap(err)
	}
	return toOutput(g), nil
}

func (u *Usecase) List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*Output], error) {
	page, err := u.repository.Search(ctx, in)
	if err != nil {
		return model.SearchOutput[*Output]{}, wrap(err)
	}
	items := make([]*Output, len(page.Items))
	for i, g := range page.Items {
		items[i] = toOutput(g)
	}
	return model.SearchOutput[*Output]{
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   page.Total,
		Items:   items,
	}, nil
}

// checkCategories records missing ids in n. Only store failures are returned.
func (u *Usecase) checkCategories(ctx context.Context, n *model.Notification, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := u.categories.IDsByIDs(ctx, ids)
	if err != nil {
		return wrap(err)
	}
	if missing := model.Missing(ids, found); len(missing) > 0 {
		n.Add("categories_id", fmt.Sprintf("related categories id (or ids) not found: %s", model.JoinIDs(missing)))
	}
	return nil
}

func wrap(err error) error {
	if model.IsDomain(err) {
		return err
	}
	return errors.Join(ErrInternal, err)
}
