package transport

import (
	"github.com/ds124wfegd/collage/config"
	"github.com/ds124wfegd/collage/internal/service"
)

type CollageHandler struct {
	service service.CollageService
	form    config.CollageConfig
}

func NewCollageHandler(service service.CollageService, form config.CollageConfig) *CollageHandler {
	return &CollageHandler{service: service, form: form}
}
