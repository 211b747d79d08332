package kpis

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the KPI routes. Any guards are applied to the
// refresh endpoint only; reads stay open.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, refreshGuards ...gin.HandlerFunc) {
	kpis := rg.Group("/kpis")
	{
		kpis.GET("", h.GetKpis)
		kpis.POST("/refresh", append(refreshGuards, h.Refresh)...)
	}
}

func (h *Handler) GetKpis(c *gin.Context) {
	snapshot, err := h.service.GetKpis(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) Refresh(c *gin.Context) {
	snapshot, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
