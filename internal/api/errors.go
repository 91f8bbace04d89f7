package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/apperr"
	"github.com/lalith-99/lockerroom/internal/observ"
	"go.uber.org/zap"
)

// writeError renders err with the status its kind maps to. Internal causes
// are logged here and never sent to the client.
func writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		observ.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}
	c.JSON(apperr.Status(kind), gin.H{"error": apperr.PublicMessage(err)})
}

// pathID reads a positive integer path parameter. It writes the 400 itself
// when the value is unusable.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into dst. Field rules are checked by the
// services, so only malformed JSON fails here.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
