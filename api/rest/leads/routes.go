package leads

import (
	"codeberg.org/colegiospro/server/colegiospro/leads"
	"codeberg.org/colegiospro/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, leadRepo leads.Repository, limit gin.HandlerFunc) {
	router.POST("/contacto", limit, CreateLead(leadRepo))
	router.GET("/leads", auth.AdminMiddleware(), ListLeads(leadRepo))
}
