package service_thumbnail

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/humanbelnik/catalog/internal/model"
)

var ErrNotAnImage = errors.New("not a supported image")

var formats = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
	"image/gif":  imaging.GIF,
	"image/bmp":  imaging.BMP,
	"image/tiff": imaging.TIFF,
}

// Generator derives a half-size copy of a thumbnail.
type Generator struct {
	quality int
}

func New(quality int) *Generator {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Generator{quality: quality}
}

func (g *Generator) Half(thumb model.File) (model.File, error) {
	mt := mimetype.Detect(thumb.Content)
	format, ok := formats[mt.String()]
	if !ok {
		return model.File{}, fmt.Errorf("%w: %s", ErrNotAnImage, mt.String())
	}

	img, err := imaging.Decode(bytes.NewReader(thumb.Content), imaging.AutoOrientation(true))
	if err != nil {
		return model.File{}, fmt.Errorf("%w: %w", ErrNotAnImage, err)
	}

	b := img.Bounds()
	w, h := max(b.Dx()/2, 1), max(b.Dy()/2, 1)
	half := imaging.Resize(img, w, h, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, half, format, imaging.JPEGQuality(g.quality)); err != nil {
		return model.File{}, fmt.Errorf("failed to encode half thumbnail: %w", err)
	}

	return model.File{
		Name:        string(model.AssetThumbHalf) + mt.Extension(),
		ContentType: mt.String(),
		Content:     buf.Bytes(),
	}, nil
}
