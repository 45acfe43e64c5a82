package model

import (
	"github.com/FinCube-23/transferPoC-sub001/pkg/utilities"
	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
)

// ProofJobMessage is the queue job schema. Delivery is at-least-once, so the
// proof pipeline must tolerate duplicates.
type ProofJobMessage struct {
	UserId  *int `json:"user_id"`
	OrgId   *int `json:"org_id"`
	IsKYCed bool `json:"isKYCed"`
}

type ErrorEnvelope struct {
	Type    apperrors.ErrorType `json:"type"`
	Message string              `json:"message"`
}

// ProofResponse is the stable envelope returned to HTTP callers and
// published for queue jobs.
type ProofResponse struct {
	Success      bool           `json:"success"`
	Proof        string         `json:"proof,omitempty"`
	PublicInputs []string       `json:"publicInputs"`
	Error        *ErrorEnvelope `json:"error,omitempty"`
}

func (pr ProofResponse) Serialize() ([]byte, error) {
	return utilities.Serialize[ProofResponse](pr)
}

type ProofResultDto struct {
	UserId       int      `json:"user_id"`
	OrgId        int      `json:"org_id"`
	Success      bool     `json:"success"`
	Proof        string   `json:"proof,omitempty"`
	PublicInputs []string `json:"publicInputs,omitempty"`
	Error        string   `json:"error,omitempty"`
}

func (pr ProofResultDto) Serialize() ([]byte, error) {
	return utilities.Serialize[ProofResultDto](pr)
}
