package proof

import (
	"errors"
	"math/big"
	"testing"

	"github.com/FinCube-23/transferPoC-sub001/src/accumulator"
	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

type fakeOrgStore struct {
	orgs map[int]model.Organization
}

func (f *fakeOrgStore) GetByOrgId(orgId int) (model.Organization, error) {
	org, ok := f.orgs[orgId]
	if !ok {
		return model.Organization{}, apperrors.NewNotFound("organization %d not found", orgId)
	}
	return org, nil
}

type fakeUserStore struct {
	users   map[int]model.User
	byBatch map[string][]model.User
}

func (f *fakeUserStore) GetByUserId(userId int) (model.User, error) {
	user, ok := f.users[userId]
	if !ok {
		return model.User{}, apperrors.NewNotFound("user %d not found", userId)
	}
	return user, nil
}

func (f *fakeUserStore) ListByBatch(batchId string) ([]model.User, error) {
	return f.byBatch[batchId], nil
}

type fakeBatchStore struct {
	batches map[string]model.Batch
}

func (f *fakeBatchStore) GetByBatchId(batchId string) (model.Batch, error) {
	batch, ok := f.batches[batchId]
	if !ok {
		return model.Batch{}, apperrors.NewNotFound("batch %s not found", batchId)
	}
	return batch, nil
}

// fakeProver echoes the public roots back as decimal strings, which is the
// shape the real backend produces.
type fakeProver struct {
	err    error
	inputs []CircuitInput
}

func (f *fakeProver) Prove(input CircuitInput) (*ProofPayload, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}

	publicInputs := make([]string, len(input.Roots))
	for i, root := range input.Roots {
		publicInputs[i] = root.Text(10)
	}
	return &ProofPayload{Proof: "b64-proof", PublicInputs: publicInputs}, nil
}

const testBatchId = "2f6b0a3e-4f6f-4d6b-9a3e-000000000001"

func testFixture(t *testing.T, memberKeys []string) (*fakeOrgStore, *fakeUserStore, *fakeBatchStore, *big.Int) {
	t.Helper()

	salt := big.NewInt(982451653)
	coefficients := accumulator.Identity()

	users := &fakeUserStore{users: map[int]model.User{}, byBatch: map[string][]model.User{}}
	for i, key := range memberKeys {
		root, err := MemberCommitment(key, salt)
		if err != nil {
			t.Fatalf("Failed to derive member commitment: %v", err)
		}
		coefficients, err = accumulator.InsertRoot(coefficients, root)
		if err != nil {
			t.Fatalf("Failed to insert root: %v", err)
		}

		user := model.User{Id: i + 1, UserId: 100 + i, BatchId: testBatchId, ZkpKey: key}
		users.users[user.UserId] = user
		users.byBatch[testBatchId] = append(users.byBatch[testBatchId], user)
	}

	batch := model.Batch{BatchId: testBatchId, OrgId: 7, MemberCount: len(memberKeys)}
	if err := batch.SetCoefficients(coefficients); err != nil {
		t.Fatalf("Failed to encode coefficients: %v", err)
	}

	orgs := &fakeOrgStore{orgs: map[int]model.Organization{
		7: {OrgId: 7, WalletAddress: "0x00000000000000000000000000000000000000aa", OrgSalt: salt.Text(10)},
	}}
	batches := &fakeBatchStore{batches: map[string]model.Batch{testBatchId: batch}}

	return orgs, users, batches, salt
}

func TestGenerateProofSucceedsForRegisteredMember(t *testing.T) {
	orgs, users, batches, salt := testFixture(t, []string{"alice@example.com", "bob@example.com"})
	prover := &fakeProver{}
	service := NewService(orgs, users, batches, prover, big.NewInt(42))

	response := service.GenerateProof(100, 7, true)
	if !response.Success {
		t.Fatalf("Expected success but got error: %+v", response.Error)
	}
	if response.Proof == "" {
		t.Error("Expected a non-empty proof")
	}
	if len(response.PublicInputs) != 2 {
		t.Fatalf("Expected 2 public inputs, got %d", len(response.PublicInputs))
	}

	if len(prover.inputs) != 1 {
		t.Fatalf("Expected exactly one prover invocation, got %d", len(prover.inputs))
	}
	input := prover.inputs[0]
	if input.Salt.Cmp(salt) != 0 {
		t.Error("Prover received a different salt than the organization's")
	}
	if !input.IsKYCed {
		t.Error("Prover lost the isKYCed flag")
	}
	if input.VerifierKey.Cmp(big.NewInt(42)) != 0 {
		t.Error("Prover received the wrong verifier key")
	}
}

func TestGenerateProofPublicInputsAreDeterministic(t *testing.T) {
	orgs, users, batches, _ := testFixture(t, []string{"alice@example.com", "bob@example.com", "carol@example.com"})
	service := NewService(orgs, users, batches, &fakeProver{}, big.NewInt(42))

	first := service.GenerateProof(101, 7, false)
	second := service.GenerateProof(101, 7, false)
	if !first.Success || !second.Success {
		t.Fatalf("Expected both runs to succeed: %+v %+v", first.Error, second.Error)
	}

	if len(first.PublicInputs) != len(second.PublicInputs) {
		t.Fatalf("Public input count diverged: %d vs %d", len(first.PublicInputs), len(second.PublicInputs))
	}
	for i := range first.PublicInputs {
		if first.PublicInputs[i] != second.PublicInputs[i] {
			t.Errorf("Public input %d diverged: %s vs %s", i, first.PublicInputs[i], second.PublicInputs[i])
		}
	}
}

func TestGenerateProofUnknownOrganization(t *testing.T) {
	orgs, users, batches, _ := testFixture(t, []string{"alice@example.com"})
	service := NewService(orgs, users, batches, &fakeProver{}, big.NewInt(42))

	response := service.GenerateProof(100, 999, false)
	if response.Success {
		t.Fatal("Expected failure for unknown organization")
	}
	if response.Error == nil || response.Error.Type != apperrors.TypeNotFound {
		t.Errorf("Expected NOT_FOUND, got %+v", response.Error)
	}
}

func TestGenerateProofUnknownUser(t *testing.T) {
	orgs, users, batches, _ := testFixture(t, []string{"alice@example.com"})
	service := NewService(orgs, users, batches, &fakeProver{}, big.NewInt(42))

	response := service.GenerateProof(999, 7, false)
	if response.Success {
		t.Fatal("Expected failure for unknown user")
	}
	if response.Error == nil || response.Error.Type != apperrors.TypeNotFound {
		t.Errorf("Expected NOT_FOUND, got %+v", response.Error)
	}
}

func TestGenerateProofOrganizationMismatch(t *testing.T) {
	orgs, users, batches, _ := testFixture(t, []string{"alice@example.com"})
	orgs.orgs[8] = model.Organization{OrgId: 8, OrgSalt: "12345"}
	service := NewService(orgs, users, batches, &fakeProver{}, big.NewInt(42))

	response := service.GenerateProof(100, 8, false)
	if response.Success {
		t.Fatal("Expected failure for batch scoped to another organization")
	}
	if response.Error == nil || response.Error.Type != apperrors.TypeOrgMismatch {
		t.Errorf("Expected ORG_MISMATCH, got %+v", response.Error)
	}
}

func TestGenerateProofEmptyBatch(t *testing.T) {
	orgs, users, batches, _ := testFixture(t, nil)
	users.users[100] = model.User{Id: 1, UserId: 100, BatchId: testBatchId, ZkpKey: "alice@example.com"}
	service := NewService(orgs, users, batches, &fakeProver{}, big.NewInt(42))

	response := service.GenerateProof(100, 7, false)
	if !response.Success {
		t.Fatalf("Expected success on empty batch, got %+v", response.Error)
	}
	if response.PublicInputs == nil {
		t.Fatal("Expected an empty public input slice, got nil")
	}
	if len(response.PublicInputs) != 0 {
		t.Errorf("Expected 0 public inputs for an empty batch, got %d", len(response.PublicInputs))
	}
}

func TestGenerateProofProverFailure(t *testing.T) {
	orgs, users, batches, _ := testFixture(t, []string{"alice@example.com"})
	prover := &fakeProver{err: errors.New("constraint system unsatisfied")}
	service := NewService(orgs, users, batches, prover, big.NewInt(42))

	response := service.GenerateProof(100, 7, false)
	if response.Success {
		t.Fatal("Expected failure when the prover errors")
	}
	if response.Error == nil || response.Error.Type != apperrors.TypeProver {
		t.Errorf("Expected PROVER_ERROR, got %+v", response.Error)
	}
}

func TestGenerateProofCorruptedPolynomial(t *testing.T) {
	orgs, users, batches, _ := testFixture(t, []string{"alice@example.com"})

	// Polynomial that does not vanish at the member's commitment.
	batch := batches.batches[testBatchId]
	if err := batch.SetCoefficients([]*big.Int{big.NewInt(3), big.NewInt(1)}); err != nil {
		t.Fatalf("Failed to encode coefficients: %v", err)
	}
	batches.batches[testBatchId] = batch

	service := NewService(orgs, users, batches, &fakeProver{}, big.NewInt(42))
	response := service.GenerateProof(100, 7, false)
	if response.Success {
		t.Fatal("Expected failure when stored polynomial disagrees with members")
	}
	if response.Error == nil || response.Error.Type != apperrors.TypeInternal {
		t.Errorf("Expected INTERNAL_ERROR, got %+v", response.Error)
	}
}

func TestGenerateProofWithInputOverridesStores(t *testing.T) {
	prover := &fakeProver{}
	service := NewService(nil, nil, nil, prover, big.NewInt(42))

	response := service.GenerateProofWithInput(ProofInput{
		Roots:     []string{"11", "22"},
		UserEmail: "alice@example.com",
		Salt:      "12345",
		IsKYCed:   true,
	})
	if !response.Success {
		t.Fatalf("Expected success, got %+v", response.Error)
	}
	if len(prover.inputs) != 1 {
		t.Fatalf("Expected one prover invocation, got %d", len(prover.inputs))
	}
	if prover.inputs[0].VerifierKey.Cmp(big.NewInt(42)) != 0 {
		t.Error("Expected the configured verifier key when the override omits one")
	}
}

func TestGenerateProofWithInputRejectsBadNumbers(t *testing.T) {
	service := NewService(nil, nil, nil, &fakeProver{}, big.NewInt(42))

	response := service.GenerateProofWithInput(ProofInput{
		Roots:     []string{"not-a-number"},
		UserEmail: "alice@example.com",
		Salt:      "12345",
	})
	if response.Success {
		t.Fatal("Expected failure for a non-decimal root")
	}
	if response.Error == nil || response.Error.Type != apperrors.TypeValidation {
		t.Errorf("Expected VALIDATION_ERROR, got %+v", response.Error)
	}
}
