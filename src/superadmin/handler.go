package superadmin

import (
	"net/http"
	"strconv"

	"credchain/src/apperrors"
	"credchain/src/middleware"
	"credchain/src/rest"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service  *Service
	Sessions *middleware.SessionIssuer
}

func NewHandler(service *Service, sessions *middleware.SessionIssuer) *Handler {
	return &Handler{Service: service, Sessions: sessions}
}

// Login godoc
// @Summary      Log in a super admin
// @Tags         SuperAdmin
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/super-admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		rest.Fail(c, apperrors.InvalidArg("email and password are required"))
		return
	}

	admin, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		rest.Fail(c, err)
		return
	}

	if err := h.Sessions.IssueSuperAdmin(c, admin.Id); err != nil {
		rest.Fail(c, apperrors.Internal("login failed"))
		return
	}

	rest.OK(c, gin.H{"id": admin.Id, "name": admin.Name, "email": admin.Email})
}

// ListUniversities godoc
// @Summary      List all universities with their contact admins
// @Tags         SuperAdmin
// @Produce      json
// @Success      200  {array}  UniversityRow
// @Router       /api/super-admin/universities [get]
func (h *Handler) ListUniversities(c *gin.Context) {
	rows, err := h.Service.ListUniversities()
	if err != nil {
		rest.Fail(c, apperrors.Internal("failed to fetch universities"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// VerifyUniversity godoc
// @Summary      Approve or reject a pending university
// @Description  Approval provisions the wallet and API token; the raw token appears only in this response
// @Tags         SuperAdmin
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/super-admin/universities/{id}/verify [post]
func (h *Handler) VerifyUniversity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		rest.Fail(c, apperrors.InvalidArg("invalid university id"))
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(c, apperrors.InvalidArg("invalid request"))
		return
	}

	result, err := h.Service.Verify(id, req.Status)
	if err != nil {
		rest.Fail(c, err)
		return
	}

	if result == nil {
		rest.OK(c, nil)
		return
	}
	rest.OK(c, provisioningFields(result))
}

// ApproveUniversity godoc
// @Summary      Onboard a pending university by uuid
// @Tags         SuperAdmin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/super-admin/approve-university/{uuid} [post]
func (h *Handler) ApproveUniversity(c *gin.Context) {
	result, err := h.Service.Approve(c.Param("uuid"))
	if err != nil {
		rest.Fail(c, err)
		return
	}
	rest.OK(c, provisioningFields(result))
}

func provisioningFields(result *ProvisioningResult) gin.H {
	return gin.H{
		"message":        "University approved and onboarded successfully",
		"wallet_address": result.WalletAddress,
		"public_key":     result.PublicKey,
		"api_token":      result.RawToken,
		"api_docs":       result.APIDocsURL,
	}
}
