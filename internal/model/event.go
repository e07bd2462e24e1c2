package model

import (
	"time"

	"github.com/google/uuid"
)

// EncodeRequest asks the encoder to process a stored media file.
type EncodeRequest struct {
	VideoID  uuid.UUID `json:"video_id"`
	Kind     AssetKind `json:"kind"`
	FilePath string    `json:"file_path"`
}

// EncodeResult is published by the encoder once processing ends.
type EncodeResult struct {
	VideoID      uuid.UUID   `json:"video_id"`
	Kind         AssetKind   `json:"kind"`
	Status       MediaStatus `json:"status"`
	EncodedPath  string      `json:"encoded_path,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	// Attempts counts how many times the catalog tried to apply the result.
	Attempts int `json:"attempts,omitempty"`
}

type MediaStatusEvent struct {
	VideoID     uuid.UUID   `json:"video_id"`
	Kind        AssetKind   `json:"kind"`
	Status      MediaStatus `json:"status"`
	EncodedPath string      `json:"encoded_path,omitempty"`
	OccurredAt  time.Time   `json:"occurred_at"`
}
