package proof

import (
	"crypto/sha256"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/FinCube-23/transferPoC-sub001/src/accumulator"
)

// EmailScalar maps a user's proof key (an email-derived value) into the
// field. The raw key never enters the circuit, only this scalar does.
func EmailScalar(zkpKey string) *big.Int {
	digest := sha256.Sum256([]byte(zkpKey))
	scalar := new(big.Int).SetBytes(digest[:])
	return scalar.Mod(scalar, accumulator.FieldPrime)
}

// MemberCommitment derives the member identifier inserted into the batch
// polynomial: MiMC(emailScalar, orgSalt). The circuit recomputes the same
// hash over the secret witness, which is what makes the accumulator roots
// provable without revealing the key or the salt.
func MemberCommitment(zkpKey string, orgSalt *big.Int) (*big.Int, error) {
	var email, salt fr.Element
	email.SetBigInt(EmailScalar(zkpKey))
	salt.SetBigInt(new(big.Int).Mod(orgSalt, accumulator.FieldPrime))

	h := mimc.NewMiMC()
	emailBytes := email.Bytes()
	if _, err := h.Write(emailBytes[:]); err != nil {
		return nil, err
	}
	saltBytes := salt.Bytes()
	if _, err := h.Write(saltBytes[:]); err != nil {
		return nil, err
	}

	commitment := new(big.Int).SetBytes(h.Sum(nil))
	return commitment.Mod(commitment, accumulator.FieldPrime), nil
}
