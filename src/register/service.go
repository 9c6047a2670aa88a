package register

import (
	"errors"

	"credchain/src/apperrors"
	"credchain/src/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegistrationInput struct {
	InstitutionName     string
	Country             string
	Domain              string
	AccreditationId     string
	AdminName           string
	AdminEmail          string
	AdminPassword       string
	AdminPhone          string
	AuthorizedConfirmed bool
	TermsAccepted       bool

	LetterFilePath      string
	CertificateFilePath string
}

// Register creates a pending University together with its owner Admin.
func (s *Service) Register(input RegistrationInput) (*model.University, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.ErrRegistrationFailed(err)
	}

	var accreditationId *string
	if input.AccreditationId != "" {
		accreditationId = &input.AccreditationId
	}

	university := &model.University{
		Uuid:                  uuid.New().String(),
		Name:                  input.InstitutionName,
		Domain:                input.Domain,
		Country:               input.Country,
		AccreditationId:       accreditationId,
		AccreditationFilePath: input.LetterFilePath,
		AuthorizationFilePath: input.CertificateFilePath,
		AuthorizedConfirmed:   input.AuthorizedConfirmed,
		TermsAccepted:         input.TermsAccepted,
		Status:                model.StatusPending,
	}
	admin := &model.Admin{
		Name:         input.AdminName,
		Email:        input.AdminEmail,
		Phone:        input.AdminPhone,
		PasswordHash: string(passwordHash),
		Role:         model.RoleOwner,
	}

	if err := s.repo.CreateUniversityWithAdmin(university, admin); err != nil {
		return nil, apperrors.ErrRegistrationFailed(err)
	}
	return university, nil
}

// Login authenticates a university admin. Only admins of approved
// universities may log in; pending registrations get a distinct message.
func (s *Service) Login(email, password string) (*model.Admin, error) {
	admin, err := s.repo.GetAdminByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.Internal("login failed")
	}

	university, err := s.repo.GetUniversityById(admin.UniversityId)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if university.Status != model.StatusApproved {
		return nil, apperrors.Forbidden("your university registration is pending, you will be notified once approved")
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return admin, nil
}
