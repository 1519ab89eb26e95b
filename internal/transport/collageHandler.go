package transport

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/ds124wfegd/collage/internal/entity"
	"github.com/ds124wfegd/collage/internal/transport/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const collageFilename = "collage.png"

func (h *CollageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Field":  h.form.FormField,
		"Width":  h.form.DefaultWidth,
		"Height": h.form.DefaultHeight,
	})
}

func (h *CollageHandler) Generate(c *gin.Context) {
	req, err := h.parseCollageForm(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	req.ID = middleware.RequestID(c)

	collage, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.DataFromReader(http.StatusOK, int64(len(collage.PNG)), "image/png", bytes.NewReader(collage.PNG), map[string]string{
		"Content-Disposition": `attachment; filename="` + collageFilename + `"`,
	})
}

func (h *CollageHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	logrus.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"status":     status,
	}).WithError(err).Warn("Collage request failed")

	c.JSON(status, entity.ErrorResponse{Error: err.Error()})
}

// statusFor separates malformed input from failures while building the collage.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidDimension), errors.Is(err, entity.ErrMalformedForm):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrCanvasTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
