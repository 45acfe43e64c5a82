package proof

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type generateRequest struct {
	UserId     *int        `json:"user_id"`
	OrgId      *int        `json:"org_id"`
	IsKYCed    bool        `json:"isKYCed"`
	TestConfig *ProofInput `json:"testConfig"`
}

// GenerateProof handles POST /api/proof/generate. Typed domain failures are
// reported in the 200 envelope; only request-shape problems are 400 and
// unclassified errors 500.
func (h *Handler) GenerateProof(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failureResponse(apperrors.NewValidation("invalid request body: %v", err)))
		return
	}

	var response model.ProofResponse
	switch {
	case req.TestConfig != nil:
		response = h.service.GenerateProofWithInput(*req.TestConfig)
	case req.UserId != nil && req.OrgId != nil:
		response = h.service.GenerateProof(*req.UserId, *req.OrgId, req.IsKYCed)
	default:
		c.JSON(http.StatusBadRequest, failureResponse(apperrors.NewValidation("user_id and org_id are required")))
		return
	}

	status := http.StatusOK
	if response.Error != nil && response.Error.Type == apperrors.TypeInternal {
		status = http.StatusInternalServerError
	}
	c.JSON(status, response)
}
