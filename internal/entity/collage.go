package entity

import (
	"mime/multipart"
	"time"
)

// CollageRequest is what the form handler extracts from POST /generate.
type CollageRequest struct {
	ID     string
	Files  []*multipart.FileHeader
	Width  int
	Height int
}

// Collage is a finished, PNG-encoded canvas.
type Collage struct {
	ID     string
	Width  int
	Height int
	Images int
	PNG    []byte
}

// CollageEvent is published after a collage is produced. It never carries pixel data.
type CollageEvent struct {
	ID        string    `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Images    int       `json:"images"`
	Bytes     int       `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
