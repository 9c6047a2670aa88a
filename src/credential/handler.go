package credential

import (
	"credchain/src/apperrors"
	"credchain/src/middleware"
	"credchain/src/rest"
	"credchain/src/uploads"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service   *Service
	UploadDir string
}

func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{Service: service, UploadDir: uploadDir}
}

type updateStatusRequest struct {
	Uuid            string `json:"uuid" binding:"required"`
	TransactionHash string `json:"transaction_hash" binding:"required"`
	Status          string `json:"status" binding:"required"`
}

// IssueCredential godoc
// @Summary      Issue an NFT credential for a student document
// @Description  Accepts a multipart document plus student metadata, mints the NFT and records the credential
// @Tags         Credential
// @Accept       multipart/form-data
// @Produce      json
// @Param        document     formData  file    true  "Credential document (PDF, PNG or JPG)"
// @Param        studentId    formData  string  true  "Student identifier"
// @Param        name         formData  string  true  "Student full name"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/nft/issue-credential [post]
func (h *Handler) IssueCredential(c *gin.Context) {
	university, ok := middleware.UniversityFromContext(c)
	if !ok {
		rest.Fail(c, apperrors.ErrNotAuthenticated)
		return
	}

	studentId := c.PostForm("studentId")
	studentName := c.PostForm("name")
	if studentId == "" || studentName == "" {
		rest.Fail(c, apperrors.InvalidArg("studentId and name are required"))
		return
	}

	// Reject before touching the upstream service when no document came in.
	file, err := c.FormFile("document")
	if err != nil {
		rest.Fail(c, apperrors.ErrNoFileUploaded)
		return
	}

	documentPath, err := uploads.Save(c, file, "document", h.UploadDir)
	if err != nil {
		rest.Fail(c, err)
		return
	}

	credential, err := h.Service.Issue(c.Request.Context(), university, IssueInput{
		StudentId:    studentId,
		StudentName:  studentName,
		DocumentPath: documentPath,
	})
	if err != nil {
		rest.Fail(c, err)
		return
	}

	rest.Created(c, gin.H{
		"message":        "Credential issued successfully",
		"credential_id":  credential.Uuid,
		"student_id":     credential.StudentId,
		"student_name":   credential.StudentName,
		"document_hash":  credential.DocumentHash,
		"nft_asset_name": credential.NftAssetName,
		"nft_policy_id":  credential.NftPolicyId,
		"tx_hash":        credential.TxHash,
		"status":         credential.Status,
	})
}

// ListCredentials godoc
// @Summary      List credentials issued by the calling university
// @Tags         Credential
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/nft/credentials [get]
func (h *Handler) ListCredentials(c *gin.Context) {
	university, ok := middleware.UniversityFromContext(c)
	if !ok {
		rest.Fail(c, apperrors.ErrNotAuthenticated)
		return
	}

	credentials, err := h.Service.List(university.Id)
	if err != nil {
		rest.Fail(c, err)
		return
	}
	rest.OK(c, gin.H{"credentials": credentials})
}

// UpdateCredentialStatus godoc
// @Summary      Record a mint confirmation from the minting pipeline
// @Tags         Credential
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/update-credential-status [post]
func (h *Handler) UpdateCredentialStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(c, apperrors.InvalidArg("uuid, transaction_hash and status are required"))
		return
	}

	if err := h.Service.UpdateStatus(req.Uuid, req.TransactionHash, req.Status); err != nil {
		rest.Fail(c, err)
		return
	}
	rest.OK(c, gin.H{"message": "Credential status updated"})
}
