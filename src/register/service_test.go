package register

import (
	"testing"

	"credchain/src/apperrors"
	"credchain/src/database"
	"credchain/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := database.NewTestDB(t)
	return NewService(NewRepository(db)), db
}

func testInput() RegistrationInput {
	return RegistrationInput{
		InstitutionName:     "Humboldt University",
		Country:             "Germany",
		Domain:              "hu-berlin.de",
		AccreditationId:     "ACC-2024-001",
		AdminName:           "Anna Admin",
		AdminEmail:          "anna@hu-berlin.de",
		AdminPassword:       "s3cret-pass",
		AdminPhone:          "+49 30 2093",
		AuthorizedConfirmed: true,
		TermsAccepted:       true,
		LetterFilePath:      "storage/letter.pdf",
		CertificateFilePath: "storage/cert.pdf",
	}
}

func TestRegisterCreatesPendingUniversityWithOwner(t *testing.T) {
	service, db := newTestService(t)

	university, err := service.Register(testInput())
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, university.Status)
	assert.NotEmpty(t, university.Uuid)
	assert.Nil(t, university.WalletAddress)

	var admin model.Admin
	require.NoError(t, db.Where("university_id = ?", university.Id).First(&admin).Error)
	assert.Equal(t, model.RoleOwner, admin.Role)
	assert.Equal(t, "anna@hu-berlin.de", admin.Email)

	// Passwords are stored as bcrypt hashes only.
	assert.NotEqual(t, "s3cret-pass", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret-pass")))
}

func TestRegisterDuplicateAdminEmail(t *testing.T) {
	service, db := newTestService(t)

	_, err := service.Register(testInput())
	require.NoError(t, err)

	_, err = service.Register(testInput())
	assert.Error(t, err)

	// The failed admin insert must not leave an orphaned university behind.
	var universityCount int64
	require.NoError(t, db.Model(&model.University{}).Count(&universityCount).Error)
	assert.Equal(t, int64(1), universityCount)
}

func TestLoginPendingUniversityForbidden(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Register(testInput())
	require.NoError(t, err)

	_, err = service.Login("anna@hu-berlin.de", "s3cret-pass")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodePermissionDenied, appErr.Code)
}

func TestLoginApprovedUniversity(t *testing.T) {
	service, db := newTestService(t)

	university, err := service.Register(testInput())
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.University{}).Where("id = ?", university.Id).Update("status", model.StatusApproved).Error)

	admin, err := service.Login("anna@hu-berlin.de", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, university.Id, admin.UniversityId)

	_, err = service.Login("anna@hu-berlin.de", "wrong-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = service.Login("unknown@hu-berlin.de", "s3cret-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
