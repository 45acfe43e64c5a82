package proof

import (
	"math/big"

	"github.com/FinCube-23/transferPoC-sub001/pkg/logger"
	"github.com/FinCube-23/transferPoC-sub001/src/accumulator"
	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

// Store interfaces are declared where they are consumed; the gorm
// repositories under src/organization, src/user and src/batch satisfy them.

type OrganizationStore interface {
	GetByOrgId(orgId int) (model.Organization, error)
}

type UserStore interface {
	GetByUserId(userId int) (model.User, error)
	ListByBatch(batchId string) ([]model.User, error)
}

type BatchStore interface {
	GetByBatchId(batchId string) (model.Batch, error)
}

// ProofInput is the override path: explicit circuit inputs supplied by the
// caller instead of resolved from the stores. Both paths produce the same
// prover input shape.
type ProofInput struct {
	Roots       []string `json:"roots"`
	UserEmail   string   `json:"userEmail"`
	Salt        string   `json:"salt"`
	VerifierKey string   `json:"verifierKey"`
	IsKYCed     bool     `json:"isKYCed"`
}

type Service struct {
	orgs        OrganizationStore
	users       UserStore
	batches     BatchStore
	prover      Prover
	verifierKey *big.Int
}

func NewService(orgs OrganizationStore, users UserStore, batches BatchStore, prover Prover, verifierKey *big.Int) *Service {
	return &Service{
		orgs:        orgs,
		users:       users,
		batches:     batches,
		prover:      prover,
		verifierKey: verifierKey,
	}
}

// GenerateProof resolves the organization, user and batch, derives the
// membership root set, and invokes the prover. It snapshots everything it
// needs up front and performs no writes; the response envelope is the only
// way failures leave this boundary.
func (s *Service) GenerateProof(userID, orgID int, isKYCed bool) model.ProofResponse {
	payload, err := s.generate(userID, orgID, isKYCed)
	if err != nil {
		return failureResponse(err)
	}
	return successResponse(payload)
}

// GenerateProofWithInput is the override path used by test tooling.
func (s *Service) GenerateProofWithInput(input ProofInput) model.ProofResponse {
	payload, err := s.generateFromInput(input)
	if err != nil {
		return failureResponse(err)
	}
	return successResponse(payload)
}

func (s *Service) generate(userID, orgID int, isKYCed bool) (*ProofPayload, error) {
	org, err := s.orgs.GetByOrgId(orgID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUserId(userID)
	if err != nil {
		return nil, err
	}

	batch, err := s.batches.GetByBatchId(user.BatchId)
	if err != nil {
		return nil, err
	}

	if batch.OrgId != org.OrgId {
		return nil, apperrors.NewOrgMismatch("user %d batch is not scoped to organization %d", userID, orgID)
	}

	coefficients, err := batch.Coefficients()
	if err != nil {
		return nil, apperrors.NewInternal(err, "batch polynomial could not be decoded")
	}

	salt, ok := new(big.Int).SetString(org.OrgSalt, 10)
	if !ok {
		return nil, apperrors.NewInternal(nil, "organization salt is not a decimal integer")
	}

	roots, err := s.deriveRoots(batch.BatchId, salt, coefficients)
	if err != nil {
		return nil, err
	}

	input := CircuitInput{
		Roots:       roots,
		EmailScalar: EmailScalar(user.ZkpKey),
		Salt:        salt,
		VerifierKey: s.verifierKey,
		IsKYCed:     isKYCed,
	}

	return s.prove(input)
}

func (s *Service) generateFromInput(input ProofInput) (*ProofPayload, error) {
	roots := make([]*big.Int, len(input.Roots))
	for i, encoded := range input.Roots {
		root, ok := new(big.Int).SetString(encoded, 10)
		if !ok {
			return nil, apperrors.NewValidation("roots[%d] is not a decimal integer", i)
		}
		roots[i] = root
	}

	salt, ok := new(big.Int).SetString(input.Salt, 10)
	if !ok {
		return nil, apperrors.NewValidation("salt is not a decimal integer")
	}

	verifierKey := s.verifierKey
	if input.VerifierKey != "" {
		verifierKey, ok = new(big.Int).SetString(input.VerifierKey, 10)
		if !ok {
			return nil, apperrors.NewValidation("verifierKey is not a decimal integer")
		}
	}

	circuitInput := CircuitInput{
		Roots:       roots,
		EmailScalar: EmailScalar(input.UserEmail),
		Salt:        salt,
		VerifierKey: verifierKey,
		IsKYCed:     input.IsKYCed,
	}

	return s.prove(circuitInput)
}

// deriveRoots recomputes the literal member identifiers from the batch's
// user records and cross-checks each against the stored polynomial. A
// divergence means the stores and the accumulator disagree, which is an
// integrity failure, not a request problem.
func (s *Service) deriveRoots(batchID string, salt *big.Int, coefficients []*big.Int) ([]*big.Int, error) {
	members, err := s.users.ListByBatch(batchID)
	if err != nil {
		return nil, apperrors.NewInternal(err, "could not list batch members")
	}

	roots := make([]*big.Int, len(members))
	for i, member := range members {
		root, err := MemberCommitment(member.ZkpKey, salt)
		if err != nil {
			return nil, apperrors.NewInternal(err, "member commitment derivation failed")
		}
		if accumulator.Evaluate(coefficients, root).Sign() != 0 {
			return nil, apperrors.NewInternal(nil, "batch polynomial does not contain a registered member root")
		}
		roots[i] = root
	}

	return roots, nil
}

func (s *Service) prove(input CircuitInput) (*ProofPayload, error) {
	logger.Default().Infof("Generating membership proof over %d roots", len(input.Roots))

	payload, err := s.prover.Prove(input)
	if err != nil {
		return nil, apperrors.NewProver(err, "proof generation failed")
	}

	if len(payload.PublicInputs) != len(input.Roots) {
		return nil, apperrors.NewInternal(nil, "prover returned %d public inputs for %d roots",
			len(payload.PublicInputs), len(input.Roots))
	}

	return payload, nil
}

func successResponse(payload *ProofPayload) model.ProofResponse {
	publicInputs := payload.PublicInputs
	if publicInputs == nil {
		publicInputs = []string{}
	}
	return model.ProofResponse{
		Success:      true,
		Proof:        payload.Proof,
		PublicInputs: publicInputs,
	}
}

func failureResponse(err error) model.ProofResponse {
	appErr := apperrors.From(err)
	return model.ProofResponse{
		Success: false,
		Error: &model.ErrorEnvelope{
			Type:    appErr.Type,
			Message: appErr.Message,
		},
	}
}
