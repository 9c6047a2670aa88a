package credential

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the machine-facing issuance API plus the internal
// status callback. /nft/issue-credential is the documented path;
// /issue-credential stays mounted for integrations built against the old one.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, requireToken, requireInternal gin.HandlerFunc) {
	nft := rg.Group("/nft")
	nft.Use(requireToken)
	{
		nft.POST("/issue-credential", handler.IssueCredential)
		nft.GET("/credentials", handler.ListCredentials)
	}

	legacy := rg.Group("")
	legacy.Use(requireToken)
	{
		legacy.POST("/issue-credential", handler.IssueCredential)
	}

	internal := rg.Group("")
	internal.Use(requireInternal)
	{
		internal.POST("/update-credential-status", handler.UpdateCredentialStatus)
	}
}
