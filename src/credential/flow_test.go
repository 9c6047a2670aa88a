package credential

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync/atomic"
	"testing"
	"time"

	"credchain/src/database"
	"credchain/src/encryption"
	"credchain/src/middleware"
	"credchain/src/minting"
	"credchain/src/model"
	"credchain/src/register"
	"credchain/src/superadmin"
	"credchain/src/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Full lifecycle: a university registers, the console approves it, and the
// provisioned API token issues a credential through the HTTP surface.
func TestRegisterApproveIssueFlow(t *testing.T) {
	db := database.NewTestDB(t)

	var mintCalls int64
	mint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&mintCalls, 1)
		w.Write([]byte(`{"success":true,"asset_name":"CRED1","policy_id":"pol-1","transaction_hash":"tx-e2e"}`))
	}))
	t.Cleanup(mint.Close)

	// Register
	registerService := register.NewService(register.NewRepository(db))
	university, err := registerService.Register(register.RegistrationInput{
		InstitutionName: "Flow University",
		Country:         "Germany",
		Domain:          "flow.edu",
		AdminName:       "Flow Admin",
		AdminEmail:      "admin@flow.edu",
		AdminPassword:   "flow-secret",
		TermsAccepted:   true,
	})
	require.NoError(t, err)

	// Approve
	keyring := newTestKeyring(t)
	superadminService := superadmin.NewService(superadmin.NewRepository(db), keyring, "https://docs.example.com/api")
	provisioned, err := superadminService.Verify(university.Id, model.StatusApproved)
	require.NoError(t, err)
	require.NotNil(t, provisioned)

	// Issue over HTTP with the provisioned token
	service := NewService(NewRepository(db), minting.NewClient(mint.URL, 0, 5*time.Second), nil)
	handler := NewHandler(service, t.TempDir())

	engine := gin.New()
	api := engine.Group("/api")
	RegisterRoutes(api, handler, middleware.RequireAPIToken(db), middleware.RequireInternal("internal-secret"))

	w := httptest.NewRecorder()
	req := issueRequest(t, "S-9001", "Flow Student")
	req.Header.Set(middleware.APITokenHeader, provisioned.RawToken)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(1), atomic.LoadInt64(&mintCalls))
	assert.Contains(t, w.Body.String(), "tx-e2e")

	var stored model.Credential
	require.NoError(t, db.Where("university_id = ?", university.Id).First(&stored).Error)
	assert.Equal(t, model.CredentialCompleted, stored.Status)
	assert.Equal(t, "S-9001", stored.StudentId)

	// The raw token authenticates; its stored form is the hash.
	var apiToken model.ApiToken
	require.NoError(t, db.Where("university_id = ?", university.Id).First(&apiToken).Error)
	assert.Equal(t, token.Hash(provisioned.RawToken), apiToken.TokenHash)
}

func TestIssueWithoutDocumentRejectedBeforeUpstream(t *testing.T) {
	db := database.NewTestDB(t)
	university := approvedUniversity(t, db)

	rawToken, tokenHash, err := token.Generate()
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.ApiToken{UniversityId: university.Id, TokenHash: tokenHash}).Error)

	var mintCalls int64
	mint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&mintCalls, 1)
	}))
	t.Cleanup(mint.Close)

	service := NewService(NewRepository(db), minting.NewClient(mint.URL, 0, 5*time.Second), nil)
	handler := NewHandler(service, t.TempDir())

	engine := gin.New()
	api := engine.Group("/api")
	RegisterRoutes(api, handler, middleware.RequireAPIToken(db), middleware.RequireInternal("internal-secret"))

	// Multipart body with metadata but no document part.
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("studentId", "S-9002"))
	require.NoError(t, form.WriteField("name", "No Document"))
	require.NoError(t, form.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/nft/issue-credential", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set(middleware.APITokenHeader, rawToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, atomic.LoadInt64(&mintCalls))
}

func newTestKeyring(t *testing.T) *encryption.Keyring {
	t.Helper()
	keyring, err := encryption.NewKeyring("5f4dcc3b5aa765d61d8327deb882cf995f4dcc3b5aa765d61d8327deb882cf99", nil)
	require.NoError(t, err)
	return keyring
}

func issueRequest(t *testing.T, studentId, studentName string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="document"; filename="diploma.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := form.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 diploma"))
	require.NoError(t, err)

	require.NoError(t, form.WriteField("studentId", studentId))
	require.NoError(t, form.WriteField("name", studentName))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/nft/issue-credential", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}
