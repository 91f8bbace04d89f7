package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/middleware"
)

// GetMe handles GET /v1/me. The identity was already resolved by the
// Identity middleware, so there is nothing to load.
func GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
