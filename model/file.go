package model

import "io"

// UploadFileData is the raw payload handed to a Storer.
type UploadFileData struct {
	FileKey  string
	File     io.ReadSeeker
	Size     int64
	MimeType string
}

// AudioMetadata holds best-effort stream and tag information for an audio
// upload. A zero field means the value could not be determined.
type AudioMetadata struct {
	Duration    float64 `json:"duration,omitempty"`
	Bitrate     int     `json:"bitrate,omitempty"`
	SampleRate  int     `json:"sampleRate,omitempty"`
	Channels    int     `json:"channels,omitempty"`
	Title       string  `json:"title,omitempty"`
	Artist      string  `json:"artist,omitempty"`
	Album       string  `json:"album,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	Year        int     `json:"year,omitempty"`
	TrackNumber int     `json:"trackNumber,omitempty"`
}

// StoredObject is the descriptor returned to callers after a successful
// upload, synchronous or presigned. Callers persist Key as a foreign string
// reference; the key shape is identical on every storage provider.
type StoredObject struct {
	Key              string         `json:"key"`
	OriginalFilename string         `json:"originalFilename"`
	Size             int64          `json:"sizeBytes"`
	MimeType         string         `json:"mimeType"`
	Category         string         `json:"category"`
	ContentHash      string         `json:"contentHash,omitempty"`
	ThumbnailKey     string         `json:"thumbnailKey,omitempty"`
	AudioMetadata    *AudioMetadata `json:"audioMetadata,omitempty"`
}

// PresignedGrant is the capability returned by the presigned upload flow.
// It allows exactly one PUT of the given content type to FileKey until the
// object store stops honoring the URL after ExpiresIn seconds.
type PresignedGrant struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresIn int    `json:"expiresIn"`
	MimeType  string `json:"mimeType"`
	Category  string `json:"category"`
}
