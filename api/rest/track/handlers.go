package track

import (
	"net/http"

	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/errors"
	"codeberg.org/colegiospro/server/internal/relay"
	"github.com/gin-gonic/gin"
)

// Track godoc
// @Summary Record a landing-page action
// @Description Persists the action; chat_opened and pwa_installed are also pushed to online admins
// @Tags track
// @Accept json
// @Produce json
// @Param request body TrackRequest true "Tracked action"
// @Success 200 {object} TrackResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} TrackResponse
// @Router /api/track [post]
func Track(router *relay.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		userAgent := req.UserAgent
		if userAgent == "" {
			userAgent = c.Request.UserAgent()
		}

		visit := &visits.Visit{
			Ref:         req.Ref,
			DisplayName: req.DisplayName,
			RoleLabel:   req.RoleLabel,
			Action:      req.Action,
			ClientIP:    c.ClientIP(),
			UserAgent:   userAgent,
			Referrer:    req.Referrer,
		}

		if err := router.RouteTrackEvent(c.Request.Context(), visit); err != nil {
			c.JSON(http.StatusInternalServerError, TrackResponse{Status: statusError})
			return
		}

		c.JSON(http.StatusOK, TrackResponse{Status: statusOK})
	}
}
