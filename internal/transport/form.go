package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ds124wfegd/collage/internal/entity"
	"github.com/gin-gonic/gin"
)

// parseCollageForm extracts the uploads and the canvas size from the request.
// A request that is not multipart at all simply carries no uploads.
func (h *CollageHandler) parseCollageForm(c *gin.Context) (*entity.CollageRequest, error) {
	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("%w: %w", entity.ErrMalformedForm, err)
	}

	req := &entity.CollageRequest{}
	if form != nil {
		req.Files = form.File[h.form.FormField]
	}

	raw, ok := c.GetPostForm("width")
	if req.Width, err = parseDimension("width", raw, ok, h.form.DefaultWidth); err != nil {
		return nil, err
	}
	raw, ok = c.GetPostForm("height")
	if req.Height, err = parseDimension("height", raw, ok, h.form.DefaultHeight); err != nil {
		return nil, err
	}

	return req, nil
}

// parseDimension falls back to def only when the field is absent.
// A present but unparseable or non-positive value is an input error.
func parseDimension(field, raw string, present bool, def int) (int, error) {
	if !present {
		return def, nil
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", entity.ErrInvalidDimension, field, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", entity.ErrInvalidDimension, field, v)
	}
	return v, nil
}
