package accumulator

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
)

// FieldPrime is the modulus for all polynomial arithmetic: the BN254 scalar
// field, so accumulator roots live in the same field the prover works over.
var FieldPrime = ecc.BN254.ScalarField()

// Identity returns the coefficients of the constant polynomial 1, the
// representation of an empty membership set.
func Identity() []*big.Int {
	return []*big.Int{big.NewInt(1)}
}

// InsertRoot returns the coefficients of p(x)·(x − root). The input slice is
// not modified; the degree grows by exactly one. Re-inserting an existing
// root is rejected so callers can tell "already a member" from success.
func InsertRoot(coefficients []*big.Int, root *big.Int) ([]*big.Int, error) {
	if len(coefficients) == 0 {
		return nil, apperrors.NewValidation("coefficients must not be empty")
	}

	r := reduce(root)
	if Evaluate(coefficients, r).Sign() == 0 {
		return nil, apperrors.NewDuplicateRoot("root is already a member of the batch polynomial")
	}

	// new[i] = coefficients[i-1] - root*coefficients[i]  (mod p)
	result := make([]*big.Int, len(coefficients)+1)
	for i := 0; i <= len(coefficients); i++ {
		term := new(big.Int)
		if i > 0 {
			term.Set(coefficients[i-1])
		}
		if i < len(coefficients) {
			shifted := new(big.Int).Mul(r, coefficients[i])
			term.Sub(term, shifted)
		}
		result[i] = term.Mod(term, FieldPrime)
	}

	return result, nil
}

// Evaluate computes p(x) mod FieldPrime by Horner's rule.
func Evaluate(coefficients []*big.Int, x *big.Int) *big.Int {
	acc := new(big.Int)
	v := reduce(x)
	for i := len(coefficients) - 1; i >= 0; i-- {
		acc.Mul(acc, v)
		acc.Add(acc, coefficients[i])
		acc.Mod(acc, FieldPrime)
	}
	return acc
}

// Degree of the stored polynomial equals the member count.
func Degree(coefficients []*big.Int) int {
	return len(coefficients) - 1
}

func reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, FieldPrime)
}
