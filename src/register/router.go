package register

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	// POST /api/register-university  (multipart registration wizard submit)
	rg.POST("/register-university", handler.RegisterUniversity)

	// POST /api/login                (university admin session login)
	rg.POST("/login", handler.Login)
}
