package superadmin

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the console endpoints. Login is public; everything
// else requires a super-admin session.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, requireSession gin.HandlerFunc) {
	rg.POST("/super-admin/login", handler.Login)

	protected := rg.Group("/super-admin")
	protected.Use(requireSession)
	{
		protected.GET("/universities", handler.ListUniversities)
		protected.POST("/universities/:id/verify", handler.VerifyUniversity)
		protected.POST("/approve-university/:uuid", handler.ApproveUniversity)
	}
}
