package university

import (
	"net/http"

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

// GetProfile godoc
// @Summary      Fetch the developer-portal profile
// @Tags         University
// @Produce      json
// @Success      200  {object}  Profile
// @Failure      401  {object}  map[string]string
// @Router       /api/university/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	u, ok := middleware.UniversityFromContext(c)
	if !ok {
		rest.Fail(c, apperrors.ErrNotAuthenticated)
		return
	}

	profile, err := h.Service.GetProfile(u.Id)
	if err != nil {
		rest.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RegenerateToken godoc
// @Summary      Issue a replacement API token
// @Description  The raw token is shown once; the previous token is invalidated immediately
// @Tags         University
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/university/regenerate-token [post]
func (h *Handler) RegenerateToken(c *gin.Context) {
	u, ok := middleware.UniversityFromContext(c)
	if !ok {
		rest.Fail(c, apperrors.ErrNotAuthenticated)
		return
	}

	rawToken, err := h.Service.RegenerateToken(u.Id)
	if err != nil {
		rest.Fail(c, err)
		return
	}
	rest.OK(c, gin.H{"api_token": rawToken})
}

// Logout godoc
// @Summary      End the admin session
// @Tags         University
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/university/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	h.Sessions.Clear(c)
	rest.OK(c, gin.H{"message": "Logged out successfully"})
}

// GetInfo godoc
// @Summary      Identity echo for token-authenticated machine callers
// @Tags         University
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/university/info [get]
func (h *Handler) GetInfo(c *gin.Context) {
	u, ok := middleware.UniversityFromContext(c)
	if !ok {
		rest.Fail(c, apperrors.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, Info(u))
}
