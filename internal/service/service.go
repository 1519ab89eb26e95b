package service

import (
	"context"

	"github.com/ds124wfegd/collage/internal/entity"
	"github.com/ds124wfegd/collage/internal/pkg/compositor"
	"github.com/ds124wfegd/collage/internal/pkg/kafka"
)

type CollageService interface {
	Generate(ctx context.Context, req *entity.CollageRequest) (*entity.Collage, error)
}

type collageService struct {
	compositor *compositor.Compositor
	producer   kafka.Producer
}

func NewCollageService(compositor *compositor.Compositor, producer kafka.Producer) CollageService {
	return &collageService{
		compositor: compositor,
		producer:   producer,
	}
}
