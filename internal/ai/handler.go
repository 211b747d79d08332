package ai

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	ai := rg.Group("/ai")
	{
		ai.POST("/discover-fleets/:loadId", h.DiscoverFleets)
		ai.POST("/predict-price", h.PredictPrice)
	}
}

func (h *Handler) DiscoverFleets(c *gin.Context) {
	loadID, err := uuid.Parse(c.Param("loadId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid load id"})
		return
	}

	recs, err := h.service.DiscoverFleets(c.Request.Context(), loadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recs)
}

func (h *Handler) PredictPrice(c *gin.Context) {
	var req struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.service.PredictPrice(c.Request.Context(), req.Origin, req.Destination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prediction)
}
