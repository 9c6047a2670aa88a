package credential

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"credchain/src/apperrors"
	"credchain/src/database"
	"credchain/src/minting"
	"credchain/src/model"
	"credchain/src/queues"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type capturingPublisher struct {
	messages []queues.CredentialIssuedMessage
}

func (p *capturingPublisher) PublishCredentialIssued(msg queues.CredentialIssuedMessage) error {
	p.messages = append(p.messages, msg)
	return nil
}

func newTestService(t *testing.T, mintURL string, publisher Publisher) (*Service, *gorm.DB) {
	t.Helper()
	db := database.NewTestDB(t)
	minter := minting.NewClient(mintURL, 0, 5*time.Second)
	return NewService(NewRepository(db), minter, publisher), db
}

func stageDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "document-test.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func approvedUniversity(t *testing.T, db *gorm.DB) *model.University {
	t.Helper()
	address := "addr1qxtest"
	university := &model.University{
		Uuid:          uuid.New().String(),
		Name:          "Test University",
		Domain:        "test.edu",
		Country:       "Germany",
		Status:        model.StatusApproved,
		WalletAddress: &address,
	}
	require.NoError(t, db.Create(university).Error)
	return university
}

func mintServer(t *testing.T, result minting.MintResult) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.NotEmpty(t, r.FormValue("studentId"))
		assert.NotEmpty(t, r.FormValue("walletAddress"))
		json.NewEncoder(w).Encode(result)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIssueCompletedInline(t *testing.T) {
	server := mintServer(t, minting.MintResult{
		Success:         true,
		AssetName:       "CRED123",
		PolicyId:        "policy-1",
		TransactionHash: "tx-abc",
	})
	publisher := &capturingPublisher{}
	service, db := newTestService(t, server.URL, publisher)
	university := approvedUniversity(t, db)

	content := "diploma bytes"
	path := stageDocument(t, content)

	credential, err := service.Issue(context.Background(), university, IssueInput{
		StudentId:    "S-1001",
		StudentName:  "Grace Hopper",
		DocumentPath: path,
	})
	require.NoError(t, err)

	assert.Equal(t, model.CredentialCompleted, credential.Status)
	assert.Equal(t, "tx-abc", credential.TxHash)
	assert.Equal(t, "CRED123", credential.NftAssetName)
	assert.Equal(t, "policy-1", credential.NftPolicyId)

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), credential.DocumentHash)

	// Staged document is deleted after processing.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, credential.Uuid, publisher.messages[0].Uuid)
	assert.Equal(t, model.CredentialCompleted, publisher.messages[0].Status)
}

func TestIssuePendingWithoutTxHash(t *testing.T) {
	server := mintServer(t, minting.MintResult{
		Success:   true,
		AssetName: "CRED456",
		PolicyId:  "policy-1",
	})
	service, db := newTestService(t, server.URL, nil)
	university := approvedUniversity(t, db)

	credential, err := service.Issue(context.Background(), university, IssueInput{
		StudentId:    "S-1002",
		StudentName:  "Alan Turing",
		DocumentPath: stageDocument(t, "transcript"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.CredentialPending, credential.Status)
	assert.Empty(t, credential.TxHash)
}

func TestIssueUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	service, db := newTestService(t, server.URL, nil)
	university := approvedUniversity(t, db)
	path := stageDocument(t, "diploma")

	_, err := service.Issue(context.Background(), university, IssueInput{
		StudentId:    "S-1003",
		StudentName:  "Ada Lovelace",
		DocumentPath: path,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUpstream, appErr.Code)

	// Nothing persisted, staged file still cleaned up.
	var count int64
	require.NoError(t, db.Model(&model.Credential{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateStatusCompletesPending(t *testing.T) {
	service, db := newTestService(t, "http://unused", nil)
	university := approvedUniversity(t, db)

	credential := &model.Credential{
		Uuid:         uuid.New().String(),
		UniversityId: university.Id,
		StudentId:    "S-2001",
		StudentName:  "Barbara Liskov",
		Status:       model.CredentialPending,
	}
	require.NoError(t, db.Create(credential).Error)

	require.NoError(t, service.UpdateStatus(credential.Uuid, "tx-final", model.CredentialCompleted))

	var stored model.Credential
	require.NoError(t, db.Where("uuid = ?", credential.Uuid).First(&stored).Error)
	assert.Equal(t, model.CredentialCompleted, stored.Status)
	assert.Equal(t, "tx-final", stored.TxHash)

	// Completed credentials never transition again.
	err := service.UpdateStatus(credential.Uuid, "tx-other", model.CredentialCompleted)
	assert.ErrorIs(t, err, apperrors.ErrCredentialNotFound)

	require.NoError(t, db.Where("uuid = ?", credential.Uuid).First(&stored).Error)
	assert.Equal(t, "tx-final", stored.TxHash)
}

func TestUpdateStatusValidation(t *testing.T) {
	service, _ := newTestService(t, "http://unused", nil)

	assert.Error(t, service.UpdateStatus(uuid.New().String(), "tx", "rejected"))
	assert.Error(t, service.UpdateStatus(uuid.New().String(), "", model.CredentialCompleted))
	assert.ErrorIs(t, service.UpdateStatus(uuid.New().String(), "tx", model.CredentialCompleted), apperrors.ErrCredentialNotFound)
}

func TestListScopedToUniversity(t *testing.T) {
	service, db := newTestService(t, "http://unused", nil)
	first := approvedUniversity(t, db)
	second := approvedUniversity(t, db)

	for i, universityId := range []int{first.Id, first.Id, second.Id} {
		require.NoError(t, db.Create(&model.Credential{
			Uuid:         uuid.New().String(),
			UniversityId: universityId,
			StudentId:    "S-300" + string(rune('0'+i)),
			StudentName:  "Student",
			Status:       model.CredentialPending,
		}).Error)
	}

	credentials, err := service.List(first.Id)
	require.NoError(t, err)
	assert.Len(t, credentials, 2)
}
