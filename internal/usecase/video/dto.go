package usecase_video

import (
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

// Assets holds optional files; nil entries are left untouched.
type Assets struct {
	Thumb     *model.File
	ThumbHalf *model.File
	Banner    *model.File
	Media     *model.File
	Trailer   *model.File
}

type assetFile struct {
	kind model.AssetKind
	file *model.File
}

func (a Assets) list() []assetFile {
	all := []assetFile{
		{model.AssetThumb, a.Thumb},
		{model.AssetThumbHalf, a.ThumbHalf},
		{model.AssetBanner, a.Banner},
		{model.AssetMedia, a.Media},
		{model.AssetTrailer, a.Trailer},
	}
	out := all[:0]
	for _, f := range all {
		if f.file != nil {
			out = append(out, f)
		}
	}
	return out
}

func (a Assets) empty() bool {
	return len(a.list()) == 0
}

// Set stores f under kind. It reports false for unknown kinds.
func (a *Assets) Set(kind model.AssetKind, f *model.File) bool {
	switch kind {
	case model.AssetThumb:
		a.Thumb = f
	case model.AssetThumbHalf:
		a.ThumbHalf = f
	case model.AssetBanner:
		a.Banner = f
	case model.AssetMedia:
		a.Media = f
	case model.AssetTrailer:
		a.Trailer = f
	default:
		return false
	}
	return true
}

type CreateInput struct {
	Title         string
	Description   string
	YearLaunched  int
	Opened        bool
	Published     bool
	Duration      int
	Rating        model.Rating
	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID
	Assets        Assets
}

func (in CreateInput) fields() model.VideoFields {
	return model.VideoFields{
		Title:        in.Title,
		Description:  in.Description,
		YearLaunched: in.YearLaunched,
		Opened:       in.Opened,
		Published:    in.Published,
		Duration:     in.Duration,
		Rating:       in.Rating,
	}
}

// UpdateInput replaces every scalar. Nil id sets keep the current relations,
// empty ones clear them. Version, when set, must match the stored one.
type UpdateInput struct {
	ID            uuid.UUID
	Version       *int
	Title         string
	Description   string
	YearLaunched  int
	Opened        bool
	Published     bool
	Duration      int
	Rating        model.Rating
	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID
	Assets        Assets
}

func (in UpdateInput) fields() model.VideoFields {
	return model.VideoFields{
		Title:        in.Title,
		Description:  in.Description,
		YearLaunched: in.YearLaunched,
		Opened:       in.Opened,
		Published:    in.Published,
		Duration:     in.Duration,
		Rating:       in.Rating,
	}
}

type MediaStatusInput struct {
	VideoID      uuid.UUID
	Kind         model.AssetKind
	Status       model.MediaStatus
	EncodedPath  string
	ErrorMessage string
}

type MediaOutput struct {
	FilePath    string
	EncodedPath string
	Status      model.MediaStatus
}

type Output struct {
	ID            uuid.UUID
	Title         string
	Description   string
	YearLaunched  int
	Opened        bool
	Published     bool
	Duration      int
	Rating        model.Rating
	CreatedAt     time.Time
	Version       int
	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID
	Thumb         string
	ThumbHalf     string
	Banner        string
	Media         *MediaOutput
	Trailer       *MediaOutput
}

func toMediaOutput(m *model.Media) *MediaOutput {
	if m == nil {
		return nil
	}
	return &MediaOutput{
		FilePath:    m.FilePath,
		EncodedPath: m.EncodedPath,
		Status:      m.Status,
	}
}

func toOutput(v *model.Video) *Output {
	return &Output{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		YearLaunched:  v.YearLaunched,
		Opened:        v.Opened,
		Published:     v.Published,
		Duration:      v.Duration,
		Rating:        v.Rating,
		CreatedAt:     v.CreatedAt,
		Version:       v.Version,
		CategoryIDs:   v.Categories,
		GenreIDs:      v.Genres,
		CastMemberIDs: v.CastMembers,
		Thumb:         assetPath(v, model.AssetThumb),
		ThumbHalf:     assetPath(v, model.AssetThumbHalf),
		Banner:        assetPath(v, model.AssetBanner),
		Media:         toMediaOutput(v.Media),
		Trailer:       toMediaOutput(v.Trailer),
	}
}
