package model

import (
	"path/filepath"
	"strings"
)

type AssetKind string

const (
	AssetThumb     AssetKind = "thumb"
	AssetThumbHalf AssetKind = "thumb_half"
	AssetBanner    AssetKind = "banner"
	AssetMedia     AssetKind = "media"
	AssetTrailer   AssetKind = "trailer"
)

func (k AssetKind) IsImage() bool {
	return k == AssetThumb || k == AssetThumbHalf || k == AssetBanner
}

func (k AssetKind) IsValid() bool {
	return k.IsImage() || k == AssetMedia || k == AssetTrailer
}

// File is an uploaded asset held in memory until it reaches the blob store.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

func (f File) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
}

func (f File) Size() int64 {
	return int64(len(f.Content))
}
