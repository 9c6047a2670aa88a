package superadmin

import (
	"errors"
	"sync"

	"credchain/src/apperrors"
	"credchain/src/encryption"
	"credchain/src/logger"
	"credchain/src/model"
	"credchain/src/token"
	"credchain/src/wallet"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	repo       Repository
	keyring    *encryption.Keyring
	apiDocsURL string
}

func NewService(repo Repository, keyring *encryption.Keyring, apiDocsURL string) *Service {
	return &Service{repo: repo, keyring: keyring, apiDocsURL: apiDocsURL}
}

// ProvisioningResult is returned exactly once per approval. RawToken is the
// only copy of the bearer secret that will ever exist outside the caller.
type ProvisioningResult struct {
	RawToken      string
	PublicKey     string
	WalletAddress string
	APIDocsURL    string
}

func (s *Service) Login(email, password string) (*model.SuperAdmin, error) {
	admin, err := s.repo.GetSuperAdminByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.Internal("login failed")
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return admin, nil
}

func (s *Service) ListUniversities() ([]UniversityRow, error) {
	return s.repo.ListUniversities()
}

// Verify applies a status decision to a pending university. Rejection is a
// plain status update ending the lifecycle; approval runs the full onboarding
// workflow and returns the one-time provisioning payload.
func (s *Service) Verify(id int, status string) (*ProvisioningResult, error) {
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, apperrors.InvalidArg("invalid status")
	}

	university, err := s.repo.GetUniversityById(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUniversityNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update university status")
	}
	if university.Status != model.StatusPending {
		return nil, apperrors.ErrInvalidState
	}

	if status == model.StatusRejected {
		return nil, s.repo.UpdateStatus(id, model.StatusRejected)
	}
	return s.approve(university)
}

// Approve onboards a pending university by uuid: wallet, encrypted secrets,
// API token and the atomic persistence step.
func (s *Service) Approve(uuid string) (*ProvisioningResult, error) {
	university, err := s.repo.GetUniversityByUuid(uuid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUniversityNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load university")
	}
	return s.approve(university)
}

func (s *Service) approve(university *model.University) (*ProvisioningResult, error) {
	log := logger.Default()

	if university.Status != model.StatusPending {
		return nil, apperrors.ErrInvalidState
	}

	generated, err := wallet.Generate()
	if err != nil {
		return nil, apperrors.ErrOnboardingFailed(err)
	}

	// Mnemonic and private key are independent secrets; encrypt them
	// concurrently, both must succeed.
	var (
		wg                   sync.WaitGroup
		encryptedMnemonic    string
		encryptedPrivateKey  string
		mnemonicErr, privErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		encryptedMnemonic, mnemonicErr = s.keyring.Encrypt(generated.Mnemonic)
	}()
	go func() {
		defer wg.Done()
		encryptedPrivateKey, privErr = s.keyring.Encrypt(generated.PrivateKey)
	}()
	wg.Wait()
	if mnemonicErr != nil {
		return nil, apperrors.ErrOnboardingFailed(mnemonicErr)
	}
	if privErr != nil {
		return nil, apperrors.ErrOnboardingFailed(privErr)
	}

	rawToken, tokenHash, err := token.Generate()
	if err != nil {
		return nil, apperrors.ErrOnboardingFailed(err)
	}

	err = s.repo.Onboard(university.Id, WalletColumns{
		PublicKey:           generated.PublicKey,
		EncryptedPrivateKey: encryptedPrivateKey,
		EncryptedMnemonic:   encryptedMnemonic,
		WalletAddress:       generated.Address,
	}, tokenHash)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Lost the race against a concurrent approval.
		return nil, apperrors.ErrInvalidState
	}
	if err != nil {
		return nil, apperrors.ErrOnboardingFailed(err)
	}

	log.Infof("Onboarded university %s with wallet %s", university.Uuid, generated.Address)
	return &ProvisioningResult{
		RawToken:      rawToken,
		PublicKey:     generated.PublicKey,
		WalletAddress: generated.Address,
		APIDocsURL:    s.apiDocsURL,
	}, nil
}
