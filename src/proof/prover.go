package proof

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// CircuitInput is the full witness assembled by the service: the public
// membership roots plus the prover's secrets.
type CircuitInput struct {
	Roots       []*big.Int
	EmailScalar *big.Int
	Salt        *big.Int
	VerifierKey *big.Int
	IsKYCed     bool
}

type ProofPayload struct {
	Proof        string
	PublicInputs []string
}

// Prover is the opaque proving backend. Implementations must return an
// error rather than panic; proof bytes may be randomized but public inputs
// are a pure function of the input.
type Prover interface {
	Prove(input CircuitInput) (*ProofPayload, error)
}

// GnarkProver runs groth16 over BN254, compiling a membership circuit sized
// to the root set on each call.
type GnarkProver struct{}

func NewGnarkProver() *GnarkProver {
	return &GnarkProver{}
}

func (p *GnarkProver) Prove(input CircuitInput) (payload *ProofPayload, err error) {
	// gnark panics on some malformed witnesses; nothing may escape here.
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = fmt.Errorf("prover panic: %v", r)
		}
	}()

	circuit := NewMembershipCircuit(len(input.Roots))
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("circuit compilation failed: %w", err)
	}

	pk, _, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("proving key setup failed: %w", err)
	}

	assignment := NewMembershipCircuit(len(input.Roots))
	assignment.EmailScalar = input.EmailScalar
	assignment.Salt = input.Salt
	assignment.VerifierKey = input.VerifierKey
	assignment.IsKYCed = boolToVariable(input.IsKYCed)
	for i, root := range input.Roots {
		assignment.Roots[i] = root
	}

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness construction failed: %w", err)
	}

	zkProof, err := groth16.Prove(ccs, pk, fullWitness)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}

	publicWitness, err := fullWitness.Public()
	if err != nil {
		return nil, fmt.Errorf("public witness extraction failed: %w", err)
	}

	publicInputs, err := publicInputsAsDecimal(publicWitness.Vector())
	if err != nil {
		return nil, err
	}

	var proofBuf bytes.Buffer
	if _, err := zkProof.WriteTo(&proofBuf); err != nil {
		return nil, fmt.Errorf("proof serialization failed: %w", err)
	}

	return &ProofPayload{
		Proof:        base64.StdEncoding.EncodeToString(proofBuf.Bytes()),
		PublicInputs: publicInputs,
	}, nil
}

func publicInputsAsDecimal(vector any) ([]string, error) {
	elements, ok := vector.(fr.Vector)
	if !ok {
		return nil, fmt.Errorf("unexpected public witness vector type %T", vector)
	}

	decimals := make([]string, len(elements))
	for i := range elements {
		decimals[i] = elements[i].BigInt(new(big.Int)).Text(10)
	}
	return decimals, nil
}

func boolToVariable(b bool) frontend.Variable {
	if b {
		return 1
	}
	return 0
}
