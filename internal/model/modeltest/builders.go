// Package modeltest holds builders producing valid aggregates for tests.
// Every builder draws from an injected *rand.Rand so runs are reproducible.
package modeltest

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func Word(r *rand.Rand, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(letters[r.Intn(len(letters))])
	}
	return b.String()
}

func ID(r *rand.Rand) uuid.UUID {
	var b [16]byte
	r.Read(b[:])
	id, _ := uuid.FromBytes(b[:])
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

func IDs(r *rand.Rand, n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = ID(r)
	}
	return out
}

var allRatings = []model.Rating{
	model.RatingER, model.RatingL, model.RatingAge10, model.RatingAge12,
	model.RatingAge14, model.RatingAge16, model.RatingAge18,
}

type VideoBuilder struct {
	r *rand.Rand
	v model.Video
}

func NewVideoBuilder(r *rand.Rand) *VideoBuilder {
	return &VideoBuilder{
		r: r,
		v: model.Video{
			ID:           ID(r),
			Title:        "Video " + Word(r, 12),
			Description:  "Description " + Word(r, 40),
			YearLaunched: 1960 + r.Intn(63),
			Opened:       r.Intn(2) == 0,
			Published:    r.Intn(2) == 0,
			Duration:     100 + r.Intn(201),
			Rating:       allRatings[r.Intn(len(allRatings))],
			CreatedAt:    model.Now(),
			Version:      1,
			Categories:   []uuid.UUID{},
			Genres:       []uuid.UUID{},
			CastMembers:  []uuid.UUID{},
		},
	}
}

func (b *VideoBuilder) WithID(id uuid.UUID) *VideoBuilder {
	b.v.ID = id
	return b
}

func (b *VideoBuilder) WithTitle(title string) *VideoBuilder {
	b.v.Title = title
	return b
}

func (b *VideoBuilder) WithDuration(d int) *VideoBuilder {
	b.v.Duration = d
	return b
}

func (b *VideoBuilder) WithRating(rating model.Rating) *VideoBuilder {
	b.v.Rating = rating
	return b
}

func (b *VideoBuilder) WithVersion(version int) *VideoBuilder {
	b.v.Version = version
	return b
}

func (b *VideoBuilder) WithCategories(n int) *VideoBuilder {
	b.v.Categories = IDs(b.r, n)
	return b
}

func (b *VideoBuilder) WithGenres(n int) *VideoBuilder {
	b.v.Genres = IDs(b.r, n)
	return b
}

func (b *VideoBuilder) WithCastMembers(n int) *VideoBuilder {
	b.v.CastMembers = IDs(b.r, n)
	return b
}

func (b *VideoBuilder) WithAssets() *VideoBuilder {
	prefix := fmt.Sprintf("videos/%s/", b.v.ID)
	b.v.Thumb = &model.Image{Path: prefix + "thumb.jpg"}
	b.v.ThumbHalf = &model.Image{Path: prefix + "thumb_half.jpg"}
	b.v.Banner = &model.Image{Path: prefix + "banner.jpg"}
	b.v.Media = &model.Media{FilePath: prefix + "media.mp4", Status: model.MediaStatusPending}
	b.v.Trailer = &model.Media{FilePath: prefix + "trailer.mp4", Status: model.MediaStatusPending}
	return b
}

func (b *VideoBuilder) Fields() model.VideoFields {
	return model.VideoFields{
		Title:        b.v.Title,
		Description:  b.v.Description,
		YearLaunched: b.v.YearLaunched,
		Opened:       b.v.Opened,
		Published:    b.v.Published,
		Duration:     b.v.Duration,
		Rating:       b.v.Rating,
	}
}

func (b *VideoBuilder) Build() *model.Video {
	v := b.v
	return &v
}

func NewCategory(r *rand.Rand) *model.Category {
	return &model.Category{
		ID:          ID(r),
		Name:        "Category " + Word(r, 8),
		Description: "Description " + Word(r, 30),
		IsActive:    true,
		CreatedAt:   model.Now(),
	}
}

func NewGenre(r *rand.Rand, categories int) *model.Genre {
	return &model.Genre{
		ID:         ID(r),
		Name:       "Genre " + Word(r, 8),
		IsActive:   true,
		Categories: IDs(r, categories),
		CreatedAt:  model.Now(),
	}
}

func NewCastMember(r *rand.Rand) *model.CastMember {
	t := model.CastMemberTypeActor
	if r.Intn(2) == 0 {
		t = model.CastMemberTypeDirector
	}
	return &model.CastMember{
		ID:        ID(r),
		Name:      "Person " + Word(r, 10),
		Type:      t,
		CreatedAt: model.Now(),
	}
}
