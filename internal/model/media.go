package model

import (
	"errors"
	"fmt"
)

type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "pending"
	MediaStatusProcessing MediaStatus = "processing"
	MediaStatusCompleted  MediaStatus = "completed"
	MediaStatusError      MediaStatus = "error"
)

func (s MediaStatus) IsValid() bool {
	switch s {
	case MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted, MediaStatusError:
		return true
	}
	return false
}

var (
	ErrEmptyFilePath          = errors.New("file path is required")
	ErrEmptyEncodedPath       = errors.New("encoded path is required")
	ErrInvalidMediaTransition = errors.New("invalid media status transition")
	ErrMediaNotAttached       = errors.New("media is not attached")
	ErrUnknownMediaStatus     = errors.New("unknown media status")
)

// Media is a playable file together with its encoding state.
// EncodedPath is non-empty only when Status is MediaStatusCompleted.
type Media struct {
	FilePath    string
	EncodedPath string
	Status      MediaStatus
}

func NewMedia(filePath string) (Media, error) {
	if filePath == "" {
		return Media{}, ErrEmptyFilePath
	}
	return Media{FilePath: filePath, Status: MediaStatusPending}, nil
}

func (m Media) SentToEncode() (Media, error) {
	if m.Status != MediaStatusPending {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidMediaTransition, m.Status, MediaStatusProcessing)
	}
	m.Status = MediaStatusProcessing
	return m, nil
}

func (m Media) Encoded(encodedPath string) (Media, error) {
	if encodedPath == "" {
		return m, ErrEmptyEncodedPath
	}
	if m.Status != MediaStatusPending && m.Status != MediaStatusProcessing {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidMediaTransition, m.Status, MediaStatusCompleted)
	}
	m.EncodedPath = encodedPath
	m.Status = MediaStatusCompleted
	return m, nil
}

func (m Media) EncodingFailed() (Media, error) {
	if m.Status != MediaStatusPending && m.Status != MediaStatusProcessing {
		return m, fmt.Errorf("%w: %s -> %s", ErrInvalidMediaTransition, m.Status, MediaStatusError)
	}
	m.EncodedPath = ""
	m.Status = MediaStatusError
	return m, nil
}

type Image struct {
	Path string
}

func NewImage(path string) (Image, error) {
	if path == "" {
		return Image{}, ErrEmptyFilePath
	}
	return Image{Path: path}, nil
}
