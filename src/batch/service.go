package batch

import (
	"github.com/google/uuid"

	"github.com/FinCube-23/transferPoC-sub001/pkg/logger"
	"github.com/FinCube-23/transferPoC-sub001/src/accumulator"
	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
	"github.com/FinCube-23/transferPoC-sub001/src/organization"
	"github.com/FinCube-23/transferPoC-sub001/src/proof"
	"github.com/FinCube-23/transferPoC-sub001/src/user"
)

type Service struct {
	batches Repository
	users   user.Repository
	orgs    organization.Repository
	locks   *batchLocks
}

func NewService(batches Repository, users user.Repository, orgs organization.Repository) *Service {
	return &Service{
		batches: batches,
		users:   users,
		orgs:    orgs,
		locks:   newBatchLocks(),
	}
}

// CreateBatch provisions an empty batch scoped to an organization. The
// equation starts as the identity polynomial ["1"].
func (s *Service) CreateBatch(orgID int) (model.Batch, error) {
	var batch model.Batch

	org, err := s.orgs.GetByOrgId(orgID)
	if err != nil {
		return batch, err
	}

	batch = model.Batch{
		BatchId: uuid.New().String(),
		OrgId:   org.OrgId,
	}
	if err := batch.SetCoefficients(accumulator.Identity()); err != nil {
		return batch, apperrors.NewInternal(err, "could not encode identity polynomial")
	}

	if err := s.batches.Create(&batch); err != nil {
		return batch, apperrors.NewInternal(err, "could not persist batch")
	}

	logger.Default().Infof("Created batch %s for organization %d", batch.BatchId, orgID)
	return batch, nil
}

// RegisterMember creates the user record and inserts the derived member
// root into the batch polynomial. The whole mutation runs under the batch's
// lock so concurrent registrations into one batch never interleave, and
// both rows are written in a single transaction.
func (s *Service) RegisterMember(batchID string, userID int, balance int64, zkpKey string) (model.User, error) {
	var member model.User

	if userID <= 0 {
		return member, apperrors.NewValidation("user_id must be a positive integer")
	}
	if balance < 0 {
		return member, apperrors.NewValidation("balance must be non-negative")
	}
	if zkpKey == "" {
		return member, apperrors.NewValidation("zkp_key must not be empty")
	}

	lock := s.locks.forBatch(batchID)
	lock.Lock()
	defer lock.Unlock()

	batch, err := s.batches.GetByBatchId(batchID)
	if err != nil {
		return member, err
	}

	if _, err := s.users.GetByUserId(userID); err == nil {
		return member, apperrors.NewValidation("user %d is already assigned to a batch", userID)
	} else if !apperrors.IsType(err, apperrors.TypeNotFound) {
		return member, apperrors.NewInternal(err, "could not check user existence")
	}

	org, err := s.orgs.GetByOrgId(batch.OrgId)
	if err != nil {
		return member, err
	}
	salt, err := organization.SaltScalar(org)
	if err != nil {
		return member, err
	}

	root, err := proof.MemberCommitment(zkpKey, salt)
	if err != nil {
		return member, apperrors.NewInternal(err, "member commitment derivation failed")
	}

	coefficients, err := batch.Coefficients()
	if err != nil {
		return member, apperrors.NewInternal(err, "batch polynomial could not be decoded")
	}

	coefficients, err = accumulator.InsertRoot(coefficients, root)
	if err != nil {
		return member, err
	}

	if err := batch.SetCoefficients(coefficients); err != nil {
		return member, apperrors.NewInternal(err, "could not encode batch polynomial")
	}
	batch.MemberCount++

	member = model.User{
		UserId:  userID,
		BatchId: batch.BatchId,
		Balance: balance,
		ZkpKey:  zkpKey,
	}
	if err := s.batches.RegisterMember(&member, &batch); err != nil {
		return member, apperrors.NewInternal(err, "could not persist member registration")
	}

	logger.Default().Infof("Registered user %d into batch %s (members: %d)", userID, batchID, batch.MemberCount)
	return member, nil
}

func (s *Service) GetBatch(batchID string) (model.Batch, error) {
	return s.batches.GetByBatchId(batchID)
}
