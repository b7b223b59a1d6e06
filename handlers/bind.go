package handlers

import (
	"errors"
	"io"
	"net/http"

	"coolrentals/utils"

	"github.com/gin-gonic/gin"
)

type normalizer interface {
	Normalize()
}

// bindJSON decodes, normalizes and validates a request body. An empty body
// decodes as the zero value so required-field messages still apply.
func bindJSON(c *gin.Context, dst normalizer) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return utils.DecodeError(err, dst)
	}
	dst.Normalize()
	return utils.Validate(dst)
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, utils.Envelope{Success: true, Message: message, Data: data})
}

func ok(c *gin.Context, data any) {
	respond(c, http.StatusOK, "", data)
}

func listed[T any](c *gin.Context, items []T, total int64) {
	c.JSON(http.StatusOK, utils.Envelope{Success: true, Data: items, Total: &total})
}
