package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"type": apperrors.TypeValidation, "message": "id must be an integer"}})
		return
	}

	u, err := h.repo.GetByUserId(userID)
	if err != nil {
		appErr := apperrors.From(err)
		status := http.StatusInternalServerError
		if appErr.Type == apperrors.TypeNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": gin.H{"type": appErr.Type, "message": appErr.Message}})
		return
	}

	// zkp_key stays server-side
	c.JSON(http.StatusOK, gin.H{
		"user_id":  u.UserId,
		"batch_id": u.BatchId,
		"balance":  u.Balance,
	})
}
