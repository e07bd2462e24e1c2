package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	VideoTitleMaxLength       = 255
	VideoDescriptionMaxLength = 4000
	VideoMinYearLaunched      = 1888
	videoMaxYearsAhead        = 5
)

// VideoFields are the scalar attributes shared by creation and update.
type VideoFields struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       Rating
}

// Video is the catalog aggregate root. It owns its images and medias and
// references categories, genres and cast members by id.
type Video struct {
	ID           uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       Rating
	CreatedAt    time.Time
	Version      int

	Thumb     *Image
	ThumbHalf *Image
	Banner    *Image
	Media     *Media
	Trailer   *Media

	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

func NewVideo(f VideoFields) (*Video, error) {
	v := &Video{
		ID:          uuid.New(),
		CreatedAt:   Now(),
		Version:     1,
		Categories:  []uuid.UUID{},
		Genres:      []uuid.UUID{},
		CastMembers: []uuid.UUID{},
	}
	v.apply(f)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Video) apply(f VideoFields) {
	v.Title = f.Title
	v.Description = f.Description
	v.YearLaunched = f.YearLaunched
	v.Opened = f.Opened
	v.Published = f.Published
	v.Duration = f.Duration
	v.Rating = f.Rating
}

// Update replaces every scalar attribute. Relations and assets are kept.
// On validation failure the video is left untouched.
func (v *Video) Update(f VideoFields) error {
	candidate := *v
	candidate.apply(f)
	if err := candidate.Validate(); err != nil {
		return err
	}
	v.apply(f)
	return nil
}

// Validate reports every violated rule at once.
func (v *Video) Validate() error {
	var n Notification

	title := strings.TrimSpace(v.Title)
	switch {
	case title == "":
		n.Add("title", "should not be empty")
	case len([]rune(v.Title)) > VideoTitleMaxLength:
		n.Add("title", fmt.Sprintf("should be less or equal %d characters long", VideoTitleMaxLength))
	}

	description := strings.TrimSpace(v.Description)
	switch {
	case description == "":
		n.Add("description", "should not be empty")
	case len([]rune(v.Description)) > VideoDescriptionMaxLength:
		n.Add("description", fmt.Sprintf("should be less or equal %d characters long", VideoDescriptionMaxLength))
	}

	maxYear := time.Now().Year() + videoMaxYearsAhead
	if v.YearLaunched < VideoMinYearLaunched || v.YearLaunched > maxYear {
		n.Add("year_launched", fmt.Sprintf("should be between %d and %d", VideoMinYearLaunched, maxYear))
	}

	if v.Duration <= 0 {
		n.Add("duration", "should be greater than 0")
	}

	if !v.Rating.IsValid() {
		n.Add("rating", fmt.Sprintf("unknown rating %q", v.Rating))
	}

	if v.Media != nil && v.Media.Status != MediaStatusCompleted && v.Media.EncodedPath != "" {
		n.Add("media", "encoded path is set before encoding completed")
	}

	return n.Err()
}

func (v *Video) UpdateThumb(path string) error {
	img, err := NewImage(path)
	if err != nil {
		return err
	}
	v.Thumb = &img
	return nil
}

func (v *Video) UpdateThumbHalf(path string) error {
	img, err := NewImage(path)
	if err != nil {
		return err
	}
	v.ThumbHalf = &img
	return nil
}

func (v *Video) UpdateBanner(path string) error {
	img, err := NewImage(path)
	if err != nil {
		return err
	}
	v.Banner = &img
	return nil
}

func (v *Video) UpdateMedia(path string) error {
	m, err := NewMedia(path)
	if err != nil {
		return err
	}
	v.Media = &m
	return nil
}

func (v *Video) UpdateTrailer(path string) error {
	m, err := NewMedia(path)
	if err != nil {
		return err
	}
	v.Trailer = &m
	return nil
}

func (v *Video) UpdateAsSentToEncode() error {
	if v.Media == nil {
		return ErrMediaNotAttached
	}
	m, err := v.Media.SentToEncode()
	if err != nil {
		return err
	}
	v.Media = &m
	return nil
}

func (v *Video) UpdateAsEncoded(encodedPath string) error {
	if v.Media == nil {
		return ErrMediaNotAttached
	}
	m, err := v.Media.Encoded(encodedPath)
	if err != nil {
		return err
	}
	v.Media = &m
	return nil
}

func (v *Video) UpdateAsEncodingError() error {
	if v.Media == nil {
		return ErrMediaNotAttached
	}
	m, err := v.Media.EncodingFailed()
	if err != nil {
		return err
	}
	v.Media = &m
	return nil
}

func (v *Video) AddCategory(id uuid.UUID) {
	v.Categories = appendUnique(v.Categories, id)
}

func (v *Video) RemoveCategory(id uuid.UUID) {
	v.Categories = remove(v.Categories, id)
}

func (v *Video) RemoveAllCategories() {
	v.Categories = []uuid.UUID{}
}

func (v *Video) ReplaceCategories(ids []uuid.UUID) {
	v.Categories = dedup(ids)
}

func (v *Video) AddGenre(id uuid.UUID) {
	v.Genres = appendUnique(v.Genres, id)
}

func (v *Video) RemoveGenre(id uuid.UUID) {
	v.Genres = remove(v.Genres, id)
}

func (v *Video) RemoveAllGenres() {
	v.Genres = []uuid.UUID{}
}

func (v *Video) ReplaceGenres(ids []uuid.UUID) {
	v.Genres = dedup(ids)
}

func (v *Video) AddCastMember(id uuid.UUID) {
	v.CastMembers = appendUnique(v.CastMembers, id)
}

func (v *Video) RemoveCastMember(id uuid.UUID) {
	v.CastMembers = remove(v.CastMembers, id)
}

func (v *Video) RemoveAllCastMembers() {
	v.CastMembers = []uuid.UUID{}
}

func (v *Video) ReplaceCastMembers(ids []uuid.UUID) {
	v.CastMembers = dedup(ids)
}
