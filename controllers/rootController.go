package controllers

import (
	"careconnect/middlewares"
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler answers health probes on the root path.
func rootHandler(c *gin.Context) {
	middlewares.RespondJSON(c, gin.H{"status": "ok"}, http.StatusOK)
}

// SetupRootRoute sets up routes for the application
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
}
