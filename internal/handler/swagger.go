package handler

import (
	"github.com/gin-gonic/gin"
)

// AddSwaggerRoutes отдаёт статическую документацию API из docsDir
func AddSwaggerRoutes(router *gin.Engine, docsDir string) {
	router.StaticFile("/docs", docsDir+"/swagger-ui.html")
	router.StaticFile("/docs/swagger.json", docsDir+"/swagger.json")
}
