package infra_postgres_video

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/catalog/internal/model"
)

const columns = `id, title, description, year_launched, opened, published, duration, rating,
	created_at, version, thumb_path, thumb_half_path, banner_path,
	media_file_path, media_encoded_path, media_status,
	trailer_file_path, trailer_encoded_path, trailer_status`

type VideoDB struct {
	ID           uuid.UUID `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	YearLaunched int       `db:"year_launched"`
	Opened       bool      `db:"opened"`
	Published    bool      `db:"published"`
	Duration     int       `db:"duration"`
	Rating       string    `db:"rating"`
	CreatedAt    time.Time `db:"created_at"`
	Version      int       `db:"version"`

	ThumbPath     sql.NullString `db:"thumb_path"`
	ThumbHalfPath sql.NullString `db:"thumb_half_path"`
	BannerPath    sql.NullString `db:"banner_path"`

	MediaFilePath    sql.NullString `db:"media_file_path"`
	MediaEncodedPath sql.NullString `db:"media_encoded_path"`
	MediaStatus      sql.NullString `db:"media_status"`

	TrailerFilePath    sql.NullString `db:"trailer_file_path"`
	TrailerEncodedPath sql.NullString `db:"trailer_encoded_path"`
	TrailerStatus      sql.NullString `db:"trailer_status"`
}

type relations struct {
	categories  []uuid.UUID
	genres      []uuid.UUID
	castMembers []uuid.UUID
}

func (v *VideoDB) ToDomain(rel relations) *model.Video {
	return &model.Video{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		YearLaunched: v.YearLaunched,
		Opened:       v.Opened,
		Published:    v.Published,
		Duration:     v.Duration,
		Rating:       model.Rating(v.Rating),
		CreatedAt:    v.CreatedAt,
		Version:      v.Version,
		Thumb:        toImage(v.ThumbPath),
		ThumbHalf:    toImage(v.ThumbHalfPath),
		Banner:       toImage(v.BannerPath),
		Media:        toMedia(v.MediaFilePath, v.MediaEncodedPath, v.MediaStatus),
		Trailer:      toMedia(v.TrailerFilePath, v.TrailerEncodedPath, v.TrailerStatus),
		Categories:   orEmpty(rel.categories),
		Genres:       orEmpty(rel.genres),
		CastMembers:  orEmpty(rel.castMembers),
	}
}

func FromDomain(v *model.Video) VideoDB {
	dto := VideoDB{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		YearLaunched: v.YearLaunched,
		Opened:       v.Opened,
		Published:    v.Published,
		Duration:     v.Duration,
		Rating:       string(v.Rating),
		CreatedAt:    v.CreatedAt,
		Version:      v.Version,
		ThumbPath:    fromImage(v.Thumb),
		BannerPath:   fromImage(v.Banner),
	}
	dto.ThumbHalfPath = fromImage(v.ThumbHalf)
	dto.MediaFilePath, dto.MediaEncodedPath, dto.MediaStatus = fromMedia(v.Media)
	dto.TrailerFilePath, dto.TrailerEncodedPath, dto.TrailerStatus = fromMedia(v.Trailer)
	return dto
}

func toImage(path sql.NullString) *model.Image {
	if !path.Valid {
		return nil
	}
	return &model.Image{Path: path.String}
}

func fromImage(img *model.Image) sql.NullString {
	if img == nil {
		return sql.NullString{}
	}
	return nullable(img.Path)
}

func toMedia(file, encoded, status sql.NullString) *model.Media {
	if !file.Valid {
		return nil
	}
	m := &model.Media{
		FilePath: file.String,
		Status:   model.MediaStatus(status.String),
	}
	if encoded.Valid {
		m.EncodedPath = encoded.String
	}
	if !m.Status.IsValid() {
		m.Status = model.MediaStatusPending
	}
	return m
}

func fromMedia(m *model.Media) (file, encoded, status sql.NullString) {
	if m == nil {
		return
	}
	return nullable(m.FilePath), nullable(m.EncodedPath), nullable(string(m.Status))
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func orEmpty(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
