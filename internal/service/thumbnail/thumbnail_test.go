//go:build !integration

package service_thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/humanbelnik/catalog/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ThumbnailUnitSuite struct {
	suite.Suite
}

func pngOf(t provider.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *ThumbnailUnitSuite) TestHalf(t provider.T) {
	t.Parallel()
	g := New(0)

	out, err := g.Half(model.File{Name: "thumb.png", Content: pngOf(t, 64, 40)})
	require.NoError(t, err)
	assert.Equal(t, "thumb_half.png", out.Name)
	assert.Equal(t, "image/png", out.ContentType)

	cfg, err := png.DecodeConfig(bytes.NewReader(out.Content))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func (s *ThumbnailUnitSuite) TestHalfRejectsNonImage(t provider.T) {
	t.Parallel()
	_, err := New(90).Half(model.File{Name: "thumb.jpg", Content: []byte("plain text")})
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestThumbnailUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ThumbnailUnitSuite))
}
