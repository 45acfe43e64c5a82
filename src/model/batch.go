package model

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Batch holds a membership set as the roots of a polynomial. Equation is the
// ordered coefficient list (index 0 = constant term) serialized as decimal
// strings; ["1"] is the empty set.
type Batch struct {
	Id          int    `gorm:"primaryKey;autoIncrement"`
	BatchId     string `gorm:"uniqueIndex;type:uuid;not null"`
	OrgId       int    `gorm:"index;not null"`
	Equation    string `gorm:"type:text;not null"`
	MemberCount int    `gorm:"not null;default:0"`
}

func (b *Batch) Coefficients() ([]*big.Int, error) {
	var encoded []string
	if err := json.Unmarshal([]byte(b.Equation), &encoded); err != nil {
		return nil, fmt.Errorf("batch %s has malformed equation: %w", b.BatchId, err)
	}

	coefficients := make([]*big.Int, len(encoded))
	for i, s := range encoded {
		c, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("batch %s equation[%d] is not a decimal integer", b.BatchId, i)
		}
		coefficients[i] = c
	}
	return coefficients, nil
}

func (b *Batch) SetCoefficients(coefficients []*big.Int) error {
	encoded := make([]string, len(coefficients))
	for i, c := range coefficients {
		encoded[i] = c.Text(10)
	}

	serialized, err := json.Marshal(encoded)
	if err != nil {
		return err
	}
	b.Equation = string(serialized)
	return nil
}
