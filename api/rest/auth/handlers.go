package auth

import (
	"net/http"

	"codeberg.org/colegiospro/server/internal/auth"
	"codeberg.org/colegiospro/server/internal/errors"
	"codeberg.org/colegiospro/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// IssueToken godoc
// @Summary Exchange the admin key for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Admin key"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/admin/token [post]
func IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.ValidationError(c, err)
		return
	}

	if !auth.CheckAdminKey(req.Key) {
		logger.Warn("admin token request rejected", "ip", c.ClientIP())
		errors.Unauthorized(c, "invalid admin key")
		return
	}

	token, expiresAt, err := auth.GenerateJWT()
	if err != nil {
		errors.InternalError(c, "failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
