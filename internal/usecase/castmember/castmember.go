package usecase_castmember

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

var ErrInternal = errors.New("internal error")

//go:generate mockery --name=Repository --output=mocks/castmember/repository --outpkg=repo_mocks
type Repository interface {
	Insert(ctx context.Context, c *model.CastMember) error
	Get(ctx context.Context, id uuid.UUID) (*model.CastMember, error)
	Update(ctx context.Context, c *model.CastMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, in model.SearchInput) (model.SearchOutput[*model.CastMember], error)
}

type CreateInput struct {
	Name string
	Type model.CastMemberType
}

type UpdateInput struct {
	ID   uuid.UUID
	Name *string
	Type *model.CastMemberType
}

type Output struct {
	ID        uuid.UUID
	Name      string
	Type      model.CastMemberType
	CreatedAt time.Time
}

func toOutput(c *model.CastMember) *Output {
	return &Output{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
	}
}

type Usecase struct {
	repository Repository
}

func New(repository Repository) *Usecase {
	return &Usecase{repository: repository}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Output, error) {
	c, err := model.NewCastMember(in.Name, in.Type)
	if err != nil {
		return nil, err
	}
	if err := u.repository.Insert(ctx, c); err != nil {
		return nil, wrap(err)
	}
	return toOutput(c), nil
}

func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*Output, error) {
	c, err := u.repository.Get(ctx, in.ID)
	if err != nil {
		return nil, wrap(err)
	}

	name, kind := c.Name, c.Type
	if in.Name != nil {
		name = *in.Name
	}
	if in.Type != nil {
		kind = *in.Type
	}
	if err := c.Update(name, kind); err != nil {
		return nil, err
	}

	if err := u.repository.Update(ctx, c); err != nil {
		return nil, wrap(err)
	}
	return toOutput(c), nil
}

func (u *Usecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repository.Delete(ctx, id); err != nil {
		return wrap(err)
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, id uuid.UUID) (*Output, error) {
	c, err := u.repository.Get(ctx, id)
	if err != nil {
		return nil, wrap(err)
	}
	return toOutput(c), nil
}

func (u *Usecase) List(ctx context.Context, in model.SearchInput) (model.SearchOutput[*Output], error) {
	page, err := u.repository.Search(ctx, in)
	if err != nil {
		return model.SearchOutput[*Output]{}, wrap(err)
	}
	items := make([]*Output, len(page.Items))
	for i, c := range page.Items {
		items[i] = toOutput(c)
	}
	return model.SearchOutput[*Output]{
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   page.Total,
		Items:   items,
	}, nil
}

func wrap(err error) error {
	if model.IsDomain(err) {
		return err
	}
	return errors.Join(ErrInternal, err)
}
