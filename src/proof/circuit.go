package proof

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// MembershipCircuit proves that MiMC(EmailScalar, Salt) is a root of the
// batch polynomial, i.e. a member of the public root set, without revealing
// which one. Roots are the only public inputs, so the verifier checks
// exactly the membership set and nothing about the prover's identity.
type MembershipCircuit struct {
	EmailScalar frontend.Variable   `gnark:",secret"`
	Salt        frontend.Variable   `gnark:",secret"`
	VerifierKey frontend.Variable   `gnark:",secret"`
	IsKYCed     frontend.Variable   `gnark:",secret"`
	Roots       []frontend.Variable `gnark:",public"`
}

func NewMembershipCircuit(memberCount int) *MembershipCircuit {
	return &MembershipCircuit{
		Roots: make([]frontend.Variable, memberCount),
	}
}

func (c *MembershipCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(c.IsKYCed)
	api.AssertIsDifferent(c.VerifierKey, 0)

	// Empty batch: identity polynomial, nothing to assert membership of.
	if len(c.Roots) == 0 {
		return nil
	}

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.EmailScalar, c.Salt)
	member := h.Sum()

	product := frontend.Variable(1)
	for _, root := range c.Roots {
		product = api.Mul(product, api.Sub(root, member))
	}
	api.AssertIsEqual(product, 0)

	return nil
}
