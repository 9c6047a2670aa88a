package credential

import (
	"credchain/src/model"

	"gorm.io/gorm"
)

type Repository interface {
	Create(credential *model.Credential) error
	GetByUuid(uuid string) (*model.Credential, error)
	ListByUniversity(universityId int) ([]model.Credential, error)
	// CompleteMint records the confirmed transaction hash. Only pending rows
	// transition; completed credentials never move back.
	CompleteMint(uuid, txHash string) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(credential *model.Credential) error {
	return r.db.Create(credential).Error
}

func (r *gormRepository) GetByUuid(uuid string) (*model.Credential, error) {
	var credential model.Credential
	err := r.db.Where("uuid = ?", uuid).First(&credential).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *gormRepository) ListByUniversity(universityId int) ([]model.Credential, error) {
	var credentials []model.Credential
	err := r.db.Where("university_id = ?", universityId).
		Order("created_at DESC").
		Find(&credentials).Error
	return credentials, err
}

func (r *gormRepository) CompleteMint(uuid, txHash string) error {
	result := r.db.Model(&model.Credential{}).
		Where("uuid = ? AND status = ?", uuid, model.CredentialPending).
		Updates(map[string]interface{}{
			"status":  model.CredentialCompleted,
			"tx_hash": txHash,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
