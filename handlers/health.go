package handlers

import (
	"net/http"

	"coolrentals/utils"

	"github.com/gin-gonic/gin"
)

// Health reports liveness plus the last known state of the backing stores.
func Health(c *gin.Context) {
	respond(c, http.StatusOK, "Server is running", utils.GetHealthStatus())
}
