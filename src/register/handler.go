package register

import (
	"credchain/src/apperrors"
	"credchain/src/middleware"
	"credchain/src/rest"
	"credchain/src/uploads"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service    *Service
	Sessions   *middleware.SessionIssuer
	StorageDir string
}

func NewHandler(service *Service, sessions *middleware.SessionIssuer, storageDir string) *Handler {
	return &Handler{Service: service, Sessions: sessions, StorageDir: storageDir}
}

// RegisterUniversity godoc
// @Summary      Register a new university
// @Description  Creates a pending university with its owner admin and two verification documents
// @Tags         Register
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/register-university [post]
func (h *Handler) RegisterUniversity(c *gin.Context) {
	input := RegistrationInput{
		InstitutionName:     c.PostForm("institutionName"),
		Country:             c.PostForm("country"),
		Domain:              c.PostForm("domain"),
		AccreditationId:     c.PostForm("accreditationId"),
		AdminName:           c.PostForm("adminName"),
		AdminEmail:          c.PostForm("adminEmail"),
		AdminPassword:       c.PostForm("adminPassword"),
		AdminPhone:          c.PostForm("adminPhone"),
		AuthorizedConfirmed: c.PostForm("authorizedAccepted") == "true",
		TermsAccepted:       c.PostForm("termsAccepted") == "true",
	}

	letterFile, letterErr := c.FormFile("letterFile")
	certificateFile, certErr := c.FormFile("certificateFile")
	if input.InstitutionName == "" || input.Country == "" || input.Domain == "" ||
		input.AdminName == "" || input.AdminEmail == "" || input.AdminPassword == "" ||
		letterErr != nil || certErr != nil {
		rest.Fail(c, apperrors.InvalidArg("missing required fields"))
		return
	}

	letterPath, err := uploads.Save(c, letterFile, "letterFile", h.StorageDir)
	if err != nil {
		rest.Fail(c, err)
		return
	}
	certificatePath, err := uploads.Save(c, certificateFile, "certificateFile", h.StorageDir)
	if err != nil {
		uploads.Remove(letterPath)
		rest.Fail(c, err)
		return
	}

	input.LetterFilePath = letterPath
	input.CertificateFilePath = certificatePath

	if _, err := h.Service.Register(input); err != nil {
		uploads.Remove(letterPath)
		uploads.Remove(certificatePath)
		rest.Fail(c, err)
		return
	}

	rest.OK(c, gin.H{"message": "Registration successful. We will contact you by email."})
}

// Login godoc
// @Summary      Log in a university admin
// @Tags         Register
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/login [post]
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

	if err := h.Sessions.IssueAdmin(c, admin.Id, admin.UniversityId); err != nil {
		rest.Fail(c, apperrors.Internal("login failed"))
		return
	}

	rest.OK(c, gin.H{"admin": gin.H{
		"id":            admin.Id,
		"name":          admin.Name,
		"email":         admin.Email,
		"university_id": admin.UniversityId,
	}})
}
