package transport

import (
	"html/template"

	"github.com/ds124wfegd/collage/internal/transport/middleware"
	"github.com/ds124wfegd/collage/internal/web"
	"github.com/gin-gonic/gin"
)

func InitRoutes(collageHandler *CollageHandler, maxMemory int64) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxMemory

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.Logger())

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	router.GET("/", collageHandler.Index)
	router.POST("/generate", collageHandler.Generate)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "collage",
		})
	})
	return router
}
