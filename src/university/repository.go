package university

import (
	"credchain/src/model"

	"gorm.io/gorm"
)

type Repository interface {
	GetById(id int) (*model.University, error)
	HasToken(universityId int) (bool, error)
	// ReplaceTokenHash swaps the stored hash, invalidating the previous
	// bearer token immediately.
	ReplaceTokenHash(universityId int, tokenHash string) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetById(id int) (*model.University, error) {
	var university model.University
	err := r.db.Where("id = ?", id).First(&university).Error
	if err != nil {
		return nil, err
	}
	return &university, nil
}

func (r *gormRepository) HasToken(universityId int) (bool, error) {
	var count int64
	err := r.db.Model(&model.ApiToken{}).Where("university_id = ?", universityId).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) ReplaceTokenHash(universityId int, tokenHash string) error {
	result := r.db.Model(&model.ApiToken{}).
		Where("university_id = ?", universityId).
		Update("token_hash", tokenHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
