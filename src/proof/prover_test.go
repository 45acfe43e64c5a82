package proof

import (
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

func memberCommitmentOrFatal(t *testing.T, zkpKey string, salt *big.Int) *big.Int {
	t.Helper()
	root, err := MemberCommitment(zkpKey, salt)
	if err != nil {
		t.Fatalf("Failed to derive member commitment: %v", err)
	}
	return root
}

func TestMembershipProofVerifies(t *testing.T) {
	salt := big.NewInt(982451653)
	roots := []*big.Int{
		memberCommitmentOrFatal(t, "alice@example.com", salt),
		memberCommitmentOrFatal(t, "bob@example.com", salt),
	}

	circuit := NewMembershipCircuit(len(roots))
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		t.Fatalf("Failed to compile circuit: %v", err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("Failed to run setup: %v", err)
	}

	assignment := NewMembershipCircuit(len(roots))
	assignment.EmailScalar = EmailScalar("alice@example.com")
	assignment.Salt = salt
	assignment.VerifierKey = big.NewInt(42)
	assignment.IsKYCed = 1
	for i, root := range roots {
		assignment.Roots[i] = root
	}

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		t.Fatalf("Failed to build witness: %v", err)
	}

	zkProof, err := groth16.Prove(ccs, pk, fullWitness)
	if err != nil {
		t.Fatalf("Failed to create proof: %v", err)
	}

	publicWitness, err := fullWitness.Public()
	if err != nil {
		t.Fatalf("Failed to extract public witness: %v", err)
	}

	if err := groth16.Verify(zkProof, vk, publicWitness); err != nil {
		t.Errorf("Expected verification to pass but got error: %v", err)
	}
}

func TestMembershipProofFailsForNonMember(t *testing.T) {
	salt := big.NewInt(982451653)
	roots := []*big.Int{
		memberCommitmentOrFatal(t, "alice@example.com", salt),
	}

	circuit := NewMembershipCircuit(len(roots))
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		t.Fatalf("Failed to compile circuit: %v", err)
	}

	pk, _, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("Failed to run setup: %v", err)
	}

	assignment := NewMembershipCircuit(len(roots))
	assignment.EmailScalar = EmailScalar("mallory@example.com")
	assignment.Salt = salt
	assignment.VerifierKey = big.NewInt(42)
	assignment.IsKYCed = 0
	assignment.Roots[0] = roots[0]

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		t.Fatalf("Failed to build witness: %v", err)
	}

	if _, err := groth16.Prove(ccs, pk, fullWitness); err == nil {
		t.Error("Expected proving to fail for a non-member witness")
	}
}

func TestGnarkProverProducesPublicInputsInRootOrder(t *testing.T) {
	salt := big.NewInt(982451653)
	roots := []*big.Int{
		memberCommitmentOrFatal(t, "alice@example.com", salt),
		memberCommitmentOrFatal(t, "bob@example.com", salt),
		memberCommitmentOrFatal(t, "carol@example.com", salt),
	}

	prover := NewGnarkProver()
	payload, err := prover.Prove(CircuitInput{
		Roots:       roots,
		EmailScalar: EmailScalar("bob@example.com"),
		Salt:        salt,
		VerifierKey: big.NewInt(42),
		IsKYCed:     true,
	})
	if err != nil {
		t.Fatalf("Failed to create proof: %v", err)
	}

	if len(payload.PublicInputs) != len(roots) {
		t.Fatalf("Expected %d public inputs, got %d", len(roots), len(payload.PublicInputs))
	}
	for i, root := range roots {
		if payload.PublicInputs[i] != root.Text(10) {
			t.Errorf("Public input %d is %s, expected root %s", i, payload.PublicInputs[i], root.Text(10))
		}
	}

	proofBytes, err := base64.StdEncoding.DecodeString(payload.Proof)
	if err != nil {
		t.Fatalf("Proof is not valid base64: %v", err)
	}
	if len(proofBytes) == 0 {
		t.Error("Expected non-empty proof bytes")
	}
}

func TestGnarkProverEmptyRootSet(t *testing.T) {
	prover := NewGnarkProver()
	payload, err := prover.Prove(CircuitInput{
		Roots:       nil,
		EmailScalar: EmailScalar("alice@example.com"),
		Salt:        big.NewInt(12345),
		VerifierKey: big.NewInt(42),
		IsKYCed:     false,
	})
	if err != nil {
		t.Fatalf("Failed to create proof over the empty set: %v", err)
	}
	if len(payload.PublicInputs) != 0 {
		t.Errorf("Expected 0 public inputs, got %d", len(payload.PublicInputs))
	}
}

func TestGnarkProverRejectsZeroVerifierKey(t *testing.T) {
	salt := big.NewInt(982451653)
	roots := []*big.Int{memberCommitmentOrFatal(t, "alice@example.com", salt)}

	prover := NewGnarkProver()
	_, err := prover.Prove(CircuitInput{
		Roots:       roots,
		EmailScalar: EmailScalar("alice@example.com"),
		Salt:        salt,
		VerifierKey: big.NewInt(0),
		IsKYCed:     true,
	})
	if err == nil {
		t.Error("Expected proving to fail for a zero verifier key")
	}
}
