package register

import (
	"credchain/src/model"

	"gorm.io/gorm"
)

type Repository interface {
	// CreateUniversityWithAdmin inserts both rows in one transaction so a
	// failed admin insert never leaves an orphaned university.
	CreateUniversityWithAdmin(university *model.University, admin *model.Admin) error
	GetAdminByEmail(email string) (*model.Admin, error)
	GetUniversityById(id int) (*model.University, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateUniversityWithAdmin(university *model.University, admin *model.Admin) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(university).Error; err != nil {
			return err
		}
		admin.UniversityId = university.Id
		return tx.Create(admin).Error
	})
}

func (r *gormRepository) GetAdminByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *gormRepository) GetUniversityById(id int) (*model.University, error) {
	var university model.University
	err := r.db.Where("id = ?", id).First(&university).Error
	if err != nil {
		return nil, err
	}
	return &university, nil
}
