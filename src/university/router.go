package university

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the developer portal under /api/university. Session
// endpoints serve the dashboard; /info serves machine callers by API token.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, requireSession, requireToken gin.HandlerFunc) {
	session := rg.Group("/university")
	session.Use(requireSession)
	{
		session.GET("/profile", handler.GetProfile)
		session.POST("/regenerate-token", handler.RegenerateToken)
		session.POST("/logout", handler.Logout)
	}

	machine := rg.Group("/university")
	machine.Use(requireToken)
	{
		machine.GET("/info", handler.GetInfo)
	}
}
