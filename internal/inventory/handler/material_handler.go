package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/service"
)

type MaterialHandler struct {
	svc *service.MaterialService
}

func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

// List GET /api/inventory/materials
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"count":   len(materials),
		"data":    materials,
	})
}
