package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"time"

	"github.com/ds124wfegd/collage/internal/entity"
	"github.com/ds124wfegd/collage/internal/pkg/compositor"
	"github.com/sirupsen/logrus"
)

func (s *collageService) Generate(ctx context.Context, req *entity.CollageRequest) (*entity.Collage, error) {
	canvas, err := s.compositor.NewCanvas(req.Width, req.Height)
	switch {
	case errors.Is(err, compositor.ErrCanvasTooLarge):
		return nil, fmt.Errorf("%w: %w", entity.ErrCanvasTooLarge, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidDimension, err)
	}

	// Uploads are pasted in the order they arrived; any failure drops the whole collage.
	for _, file := range req.Files {
		canvas, err = s.paste(canvas, file)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := s.compositor.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrEncodeImage, err)
	}

	collage := &entity.Collage{
		ID:     req.ID,
		Width:  req.Width,
		Height: req.Height,
		Images: len(req.Files),
		PNG:    buf.Bytes(),
	}
	s.publish(ctx, collage)

	return collage, nil
}

func (s *collageService) paste(canvas *image.NRGBA, file *multipart.FileHeader) (*image.NRGBA, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", entity.ErrOpenUpload, file.Filename, err)
	}
	defer src.Close()

	out, err := s.compositor.Add(canvas, src)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", entity.ErrDecodeImage, file.Filename, err)
	}
	return out, nil
}

// publish announces a finished collage. Delivery problems are logged only.
func (s *collageService) publish(ctx context.Context, collage *entity.Collage) {
	if s.producer == nil {
		return
	}

	event := entity.CollageEvent{
		ID:        collage.ID,
		Width:     collage.Width,
		Height:    collage.Height,
		Images:    collage.Images,
		Bytes:     len(collage.PNG),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.producer.SendMessage(ctx, event.ID, event); err != nil {
		logrus.WithField("collage_id", event.ID).WithError(err).Warn("Failed to publish collage event")
	}
}
