package organization

import (
	"errors"

	"gorm.io/gorm"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/database"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

type Repository interface {
	Create(org *model.Organization) error
	GetByOrgId(orgId int) (model.Organization, error)
}

func NewRepository() Repository {
	return &repository{db: database.GetDatabaseConnection()}
}

func NewRepositoryWithDB(db *gorm.DB) Repository {
	return &repository{db: db}
}

type repository struct {
	db *gorm.DB
}

func (r *repository) Create(org *model.Organization) error {
	return r.db.Create(org).Error
}

func (r *repository) GetByOrgId(orgId int) (model.Organization, error) {
	var org model.Organization
	err := r.db.Where("org_id = ?", orgId).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return org, apperrors.NewNotFound("organization %d not found", orgId)
	}
	return org, err
}
