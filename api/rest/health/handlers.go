package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "colegiospro"

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "ok",
		Service: serviceName,
	})
}
