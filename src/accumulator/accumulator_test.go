package accumulator

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
)

func insertAll(t *testing.T, roots []*big.Int) []*big.Int {
	t.Helper()

	coefficients := Identity()
	var err error
	for _, r := range roots {
		coefficients, err = InsertRoot(coefficients, r)
		if err != nil {
			t.Fatalf("failed to insert root %s: %v", r, err)
		}
	}
	return coefficients
}

func TestIdentityIsConstantOne(t *testing.T) {
	coefficients := Identity()
	if len(coefficients) != 1 || coefficients[0].Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected [1], got %v", coefficients)
	}
	if Degree(coefficients) != 0 {
		t.Fatalf("expected degree 0, got %d", Degree(coefficients))
	}
}

func TestInsertSingleRoot(t *testing.T) {
	coefficients, err := InsertRoot(Identity(), big.NewInt(5))
	if err != nil {
		t.Fatalf("failed to insert root: %v", err)
	}

	// (x - 5): constant term is -5 mod p, leading term 1
	if len(coefficients) != 2 {
		t.Fatalf("expected 2 coefficients, got %d", len(coefficients))
	}
	expectedConstant := new(big.Int).Sub(FieldPrime, big.NewInt(5))
	if coefficients[0].Cmp(expectedConstant) != 0 {
		t.Errorf("expected constant term p-5, got %s", coefficients[0])
	}
	if coefficients[1].Cmp(big.NewInt(1)) != 0 {
		t.Errorf("expected leading coefficient 1, got %s", coefficients[1])
	}

	if Evaluate(coefficients, big.NewInt(5)).Sign() != 0 {
		t.Error("expected polynomial to vanish at inserted root")
	}
}

func TestEvaluateVanishesAtAllRoots(t *testing.T) {
	roots := []*big.Int{big.NewInt(3), big.NewInt(11), big.NewInt(42), big.NewInt(1234567891011)}
	coefficients := insertAll(t, roots)

	if Degree(coefficients) != len(roots) {
		t.Fatalf("expected degree %d, got %d", len(roots), Degree(coefficients))
	}

	for _, r := range roots {
		if Evaluate(coefficients, r).Sign() != 0 {
			t.Errorf("expected zero at root %s", r)
		}
	}

	if Evaluate(coefficients, big.NewInt(7)).Sign() == 0 {
		t.Error("expected non-zero at non-member 7")
	}
}

func TestInsertOrderIndependence(t *testing.T) {
	roots := []*big.Int{big.NewInt(17), big.NewInt(99), big.NewInt(5), big.NewInt(300001)}

	reference := insertAll(t, roots)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]*big.Int, len(roots))
		copy(shuffled, roots)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		coefficients := insertAll(t, shuffled)
		if len(coefficients) != len(reference) {
			t.Fatalf("trial %d: degree mismatch", trial)
		}
		for i := range coefficients {
			if coefficients[i].Cmp(reference[i]) != 0 {
				t.Fatalf("trial %d: coefficient %d differs after reordering", trial, i)
			}
		}
	}
}

func TestInsertDuplicateRootRejected(t *testing.T) {
	coefficients, err := InsertRoot(Identity(), big.NewInt(5))
	if err != nil {
		t.Fatalf("failed to insert root: %v", err)
	}

	before := make([]*big.Int, len(coefficients))
	for i, c := range coefficients {
		before[i] = new(big.Int).Set(c)
	}

	_, err = InsertRoot(coefficients, big.NewInt(5))
	if err == nil {
		t.Fatal("expected duplicate root to be rejected")
	}
	if !apperrors.IsType(err, apperrors.TypeDuplicateRoot) {
		t.Fatalf("expected DUPLICATE_ROOT, got %v", err)
	}

	for i := range coefficients {
		if coefficients[i].Cmp(before[i]) != 0 {
			t.Fatal("coefficients mutated by rejected insert")
		}
	}
}

func TestInsertReducesRootModuloField(t *testing.T) {
	overflowing := new(big.Int).Add(FieldPrime, big.NewInt(5))

	coefficients, err := InsertRoot(Identity(), overflowing)
	if err != nil {
		t.Fatalf("failed to insert root: %v", err)
	}

	if Evaluate(coefficients, big.NewInt(5)).Sign() != 0 {
		t.Error("expected p+5 and 5 to be the same root")
	}

	if _, err := InsertRoot(coefficients, big.NewInt(5)); !apperrors.IsType(err, apperrors.TypeDuplicateRoot) {
		t.Errorf("expected DUPLICATE_ROOT for reduced equivalent, got %v", err)
	}
}

func TestInsertIntoEmptyCoefficients(t *testing.T) {
	if _, err := InsertRoot(nil, big.NewInt(5)); !apperrors.IsType(err, apperrors.TypeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
