package organization

import (
	"crypto/rand"
	"math/big"
	"regexp"

	"github.com/FinCube-23/transferPoC-sub001/pkg/logger"
	"github.com/FinCube-23/transferPoC-sub001/src/accumulator"
	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

var walletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateOrganization provisions an organization with a freshly generated
// salt. The salt is written once and never changes or leaves the store.
func (s *Service) CreateOrganization(orgID int, walletAddress string) (model.Organization, error) {
	var org model.Organization

	if orgID <= 0 {
		return org, apperrors.NewValidation("org_id must be a positive integer")
	}
	if !walletAddressPattern.MatchString(walletAddress) {
		return org, apperrors.NewValidation("wallet_address must be a 0x-prefixed 40-char hex string")
	}

	salt, err := rand.Int(rand.Reader, accumulator.FieldPrime)
	if err != nil {
		return org, apperrors.NewInternal(err, "could not generate organization salt")
	}

	org = model.Organization{
		OrgId:         orgID,
		WalletAddress: walletAddress,
		OrgSalt:       salt.Text(10),
	}
	if err := s.repo.Create(&org); err != nil {
		return org, apperrors.NewInternal(err, "could not persist organization")
	}

	logger.Default().Infof("Created organization %d", orgID)
	return org, nil
}

func (s *Service) GetOrganization(orgID int) (model.Organization, error) {
	return s.repo.GetByOrgId(orgID)
}

// SaltScalar parses the stored decimal salt.
func SaltScalar(org model.Organization) (*big.Int, error) {
	salt, ok := new(big.Int).SetString(org.OrgSalt, 10)
	if !ok {
		return nil, apperrors.NewInternal(nil, "organization salt is not a decimal integer")
	}
	return salt, nil
}
