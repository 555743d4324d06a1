package leads

import (
	"net/http"
	"strings"

	"codeberg.org/colegiospro/server/colegiospro/leads"
	"codeberg.org/colegiospro/server/internal/errors"
	"codeberg.org/colegiospro/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// CreateLead godoc
// @Summary Submit the contact form
// @Tags leads
// @Accept json
// @Produce json
// @Param request body leads.CreateLeadRequest true "Contact form"
// @Success 201 {object} CreateLeadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/contacto [post]
func CreateLead(leadRepo leads.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req leads.CreateLeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		req.Colegio = strings.TrimSpace(req.Colegio)
		if req.Colegio == "" {
			errors.BadRequest(c, "colegio is required", nil)
			return
		}

		lead, err := leadRepo.Create(c.Request.Context(), &req, c.ClientIP())
		if err != nil {
			errors.InternalError(c, "failed to save contact request", err)
			return
		}

		logger.Info("lead received", "lead_id", lead.ID, "colegio", lead.Colegio, "region", lead.Region)

		c.JSON(http.StatusCreated, CreateLeadResponse{Status: "ok", ID: lead.ID})
	}
}

// ListLeads godoc
// @Summary List contact-form submissions, newest first
// @Tags leads
// @Produce json
// @Success 200 {array} leads.Lead
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/leads [get]
func ListLeads(leadRepo leads.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := leadRepo.List(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to list leads", err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}
