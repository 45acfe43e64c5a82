package batch

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateBatch(c *gin.Context) {
	var req struct {
		OrgId int `json:"org_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.NewValidation("invalid request body"))
		return
	}

	batch, err := h.service.CreateBatch(req.OrgId)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"batch_id":     batch.BatchId,
		"org_id":       batch.OrgId,
		"member_count": batch.MemberCount,
	})
}

func (h *Handler) RegisterMember(c *gin.Context) {
	var req struct {
		UserId  int    `json:"user_id"`
		Balance int64  `json:"balance"`
		ZkpKey  string `json:"zkp_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.NewValidation("invalid request body"))
		return
	}

	member, err := h.service.RegisterMember(c.Param("id"), req.UserId, req.Balance, req.ZkpKey)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":  member.UserId,
		"batch_id": member.BatchId,
		"balance":  member.Balance,
	})
}

func (h *Handler) GetBatch(c *gin.Context) {
	batch, err := h.service.GetBatch(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch_id":     batch.BatchId,
		"org_id":       batch.OrgId,
		"member_count": batch.MemberCount,
	})
}

func writeError(c *gin.Context, err error) {
	appErr := apperrors.From(err)

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.TypeValidation, apperrors.TypeDuplicateRoot:
		status = http.StatusBadRequest
	case apperrors.TypeNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"error": gin.H{"type": appErr.Type, "message": appErr.Message}})
}
