package batch

import (
	"errors"

	"gorm.io/gorm"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/database"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

type Repository interface {
	Create(batch *model.Batch) error
	GetByBatchId(batchId string) (model.Batch, error)
	Update(batch *model.Batch) error
	RegisterMember(member *model.User, batch *model.Batch) error
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

func (r *repository) Create(batch *model.Batch) error {
	return r.db.Create(batch).Error
}

func (r *repository) GetByBatchId(batchId string) (model.Batch, error) {
	var b model.Batch
	err := r.db.Where("batch_id = ?", batchId).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return b, apperrors.NewNotFound("batch %s not found", batchId)
	}
	return b, err
}

func (r *repository) Update(batch *model.Batch) error {
	return r.db.Save(batch).Error
}

// RegisterMember persists the member row and the updated polynomial in one
// transaction, so no user row can exist whose root is missing from the
// batch equation.
func (r *repository) RegisterMember(member *model.User, batch *model.Batch) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return tx.Save(batch).Error
	})
}
