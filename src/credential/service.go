package credential

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"credchain/src/apperrors"
	"credchain/src/logger"
	"credchain/src/minting"
	"credchain/src/model"
	"credchain/src/queues"
	"credchain/src/uploads"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Publisher announces persisted issuances to downstream listeners. Nil-able:
// the flow works without a broker.
type Publisher interface {
	PublishCredentialIssued(msg queues.CredentialIssuedMessage) error
}

type Service struct {
	repo      Repository
	minter    *minting.Client
	publisher Publisher
}

func NewService(repo Repository, minter *minting.Client, publisher Publisher) *Service {
	return &Service{repo: repo, minter: minter, publisher: publisher}
}

type IssueInput struct {
	StudentId    string
	StudentName  string
	DocumentPath string
}

// Issue runs the full issuance flow for an approved university: hash the
// staged document, hand it to the minting service, persist the credential and
// clean up the staged file. The staged file is removed on every path, success
// or failure.
func (s *Service) Issue(ctx context.Context, university *model.University, input IssueInput) (*model.Credential, error) {
	log := logger.Default()
	defer uploads.Remove(input.DocumentPath)

	documentHash, err := hashFile(input.DocumentPath)
	if err != nil {
		log.Error(err, "Failed to hash uploaded document")
		return nil, apperrors.Internal("failed to process uploaded document")
	}

	walletAddress := ""
	if university.WalletAddress != nil {
		walletAddress = *university.WalletAddress
	}

	result, err := s.minter.Mint(ctx, minting.MintRequest{
		DocumentPath:   input.DocumentPath,
		StudentId:      input.StudentId,
		StudentName:    input.StudentName,
		UniversityId:   university.Id,
		UniversityName: university.Name,
		WalletAddress:  walletAddress,
	})
	if err != nil {
		log.Error(err, "Minting service call failed")
		return nil, apperrors.ErrUpstreamMintFailed(err)
	}

	credential := &model.Credential{
		Uuid:         uuid.New().String(),
		UniversityId: university.Id,
		StudentId:    input.StudentId,
		StudentName:  input.StudentName,
		DocumentHash: documentHash,
		NftAssetName: result.AssetName,
		NftPolicyId:  result.PolicyId,
		TxHash:       result.TransactionHash,
		Status:       model.CredentialPending,
	}
	// A transaction hash in the synchronous response means the mint confirmed
	// inline; otherwise confirmation arrives later via the status update.
	if result.TransactionHash != "" {
		credential.Status = model.CredentialCompleted
	}

	if err := s.repo.Create(credential); err != nil {
		log.Error(err, "Failed to persist credential")
		return nil, apperrors.Internal("failed to save credential")
	}

	if s.publisher != nil {
		err := s.publisher.PublishCredentialIssued(queues.CredentialIssuedMessage{
			Uuid:            credential.Uuid,
			UniversityId:    credential.UniversityId,
			StudentId:       credential.StudentId,
			NftAssetName:    credential.NftAssetName,
			TransactionHash: credential.TxHash,
			Status:          credential.Status,
		})
		if err != nil {
			// Broker trouble must not fail an issuance that is already saved.
			log.Error(err, "Failed to publish credential.issued message")
		}
	}

	log.Infof("Credential %s issued for university %d (status=%s)", credential.Uuid, university.Id, credential.Status)
	return credential, nil
}

// UpdateStatus applies a mint confirmation coming from the pipeline, either
// over the internal HTTP endpoint or the status queue.
func (s *Service) UpdateStatus(uuid, txHash, status string) error {
	if status != model.CredentialCompleted {
		return apperrors.InvalidArg(fmt.Sprintf("unsupported status transition to %q", status))
	}
	if txHash == "" {
		return apperrors.InvalidArg("transaction_hash is required")
	}

	err := s.repo.CompleteMint(uuid, txHash)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrCredentialNotFound
	}
	if err != nil {
		return apperrors.Internal("failed to update credential status")
	}
	return nil
}

func (s *Service) List(universityId int) ([]model.Credential, error) {
	credentials, err := s.repo.ListByUniversity(universityId)
	if err != nil {
		return nil, apperrors.Internal("failed to list credentials")
	}
	return credentials, nil
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading staged document: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
