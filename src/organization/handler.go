package organization

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FinCube-23/transferPoC-sub001/src/apperrors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateOrganization(c *gin.Context) {
	var req struct {
		OrgId         int    `json:"org_id"`
		WalletAddress string `json:"wallet_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"type": apperrors.TypeValidation, "message": "invalid request body"}})
		return
	}

	org, err := h.service.CreateOrganization(req.OrgId, req.WalletAddress)
	if err != nil {
		appErr := apperrors.From(err)
		status := http.StatusInternalServerError
		if appErr.Type == apperrors.TypeValidation {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": gin.H{"type": appErr.Type, "message": appErr.Message}})
		return
	}

	// org_salt stays server-side
	c.JSON(http.StatusCreated, gin.H{
		"org_id":         org.OrgId,
		"wallet_address": org.WalletAddress,
	})
}

func (h *Handler) GetOrganization(c *gin.Context) {
	orgID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"type": apperrors.TypeValidation, "message": "id must be an integer"}})
		return
	}

	org, err := h.service.GetOrganization(orgID)
	if err != nil {
		appErr := apperrors.From(err)
		status := http.StatusInternalServerError
		if appErr.Type == apperrors.TypeNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": gin.H{"type": appErr.Type, "message": appErr.Message}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"org_id":         org.OrgId,
		"wallet_address": org.WalletAddress,
	})
}
