package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/database"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

type Repository interface {
	GetByUserId(userId int) (model.User, error)
	ListByBatch(batchId string) ([]model.User, error)
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

func (r *repository) GetByUserId(userId int) (model.User, error) {
	var u model.User
	err := r.db.Where("user_id = ?", userId).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, apperrors.NewNotFound("user %d not found", userId)
	}
	return u, err
}

// ListByBatch returns batch members ordered by creation, so the derived
// roots list is stable across calls.
func (r *repository) ListByBatch(batchId string) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("batch_id = ?", batchId).Order("id asc").Find(&users).Error
	return users, err
}
