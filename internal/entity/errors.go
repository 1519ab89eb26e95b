package entity

import "errors"

var (
	// Input errors
	ErrInvalidDimension = errors.New("invalid dimensions")
	ErrMalformedForm    = errors.New("malformed multipart form")
	ErrCanvasTooLarge   = errors.New("canvas too large")

	// Processing errors
	ErrOpenUpload  = errors.New("cannot open uploaded file")
	ErrDecodeImage = errors.New("cannot decode image")
	ErrEncodeImage = errors.New("cannot encode collage")
)
