package university

import (
	"errors"

	"credchain/src/apperrors"
	"credchain/src/model"
	"credchain/src/token"

	"gorm.io/gorm"
)

type Service struct {
	repo       Repository
	apiDocsURL string
}

func NewService(repo Repository, apiDocsURL string) *Service {
	return &Service{repo: repo, apiDocsURL: apiDocsURL}
}

// Profile is the developer-portal view: university identity, wallet metadata
// and integration documentation. It never exposes the token hash or any
// encrypted secret.
type Profile struct {
	University ProfileUniversity `json:"university"`
	Wallet     ProfileWallet     `json:"wallet"`
	API        ProfileAPI        `json:"api"`
}

type ProfileUniversity struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ProfileWallet struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
}

type ProfileAPI struct {
	TokenIssued        bool     `json:"token_issued"`
	DocsURL            string   `json:"documentation"`
	Endpoints          []string `json:"endpoints"`
	SecurityGuidelines []string `json:"security_guidelines"`
}

func (s *Service) GetProfile(universityId int) (*Profile, error) {
	university, err := s.repo.GetById(universityId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUniversityNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("failed to fetch university profile")
	}

	hasToken, err := s.repo.HasToken(universityId)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch university profile")
	}

	profile := &Profile{
		University: ProfileUniversity{
			Id:        university.Id,
			Name:      university.Name,
			Domain:    university.Domain,
			Status:    university.Status,
			CreatedAt: university.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			UpdatedAt: university.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		API: ProfileAPI{
			TokenIssued: hasToken,
			DocsURL:     s.apiDocsURL,
			Endpoints: []string{
				"POST /api/nft/issue-credential",
				"GET /api/university/info",
			},
			SecurityGuidelines: []string{
				"Never share your private key or mnemonic",
				"Keep your API token confidential",
				"Rotate API tokens regularly",
				"Use HTTPS for all API calls",
			},
		},
	}
	if university.WalletAddress != nil {
		profile.Wallet.Address = *university.WalletAddress
	}
	if university.PublicKey != nil {
		profile.Wallet.PublicKey = *university.PublicKey
	}
	return profile, nil
}

// RegenerateToken issues a new bearer token for the university. The previous
// token stops working the moment the new hash is stored; the raw value is
// returned once and never again.
func (s *Service) RegenerateToken(universityId int) (string, error) {
	rawToken, tokenHash, err := token.Generate()
	if err != nil {
		return "", apperrors.Internal("failed to regenerate token")
	}

	err = s.repo.ReplaceTokenHash(universityId, tokenHash)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.FailedPrecondition("no API token issued yet")
	}
	if err != nil {
		return "", apperrors.Internal("failed to regenerate token")
	}
	return rawToken, nil
}

// Info is the minimal identity echo for token-authenticated callers.
func Info(u *model.University) map[string]interface{} {
	address := ""
	if u.WalletAddress != nil {
		address = *u.WalletAddress
	}
	return map[string]interface{}{
		"id":             u.Id,
		"name":           u.Name,
		"wallet_address": address,
		"status":         u.Status,
	}
}
