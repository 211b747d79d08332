package negotiations

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
	negotiations := rg.Group("/negotiations")
	{
		negotiations.GET("", h.List)
		negotiations.POST("", h.Create)
		negotiations.GET("/:id", h.Get)
		negotiations.POST("/:id/start", h.Start)
	}
}

func (h *Handler) List(c *gin.Context) {
	negotiations, err := h.service.ListNegotiations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, negotiations)
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		RecommendationID uuid.UUID `json:"recommendation_id"`
		BuyerAgent       Agent     `json:"buyer_agent"`
		SellerAgent      Agent     `json:"seller_agent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	negotiation, err := h.service.CreateNegotiation(c.Request.Context(), req.RecommendationID, req.BuyerAgent, req.SellerAgent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, negotiation)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	negotiation, err := h.service.GetNegotiation(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if negotiation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "negotiation not found"})
		return
	}

	c.JSON(http.StatusOK, negotiation)
}

func (h *Handler) Start(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	negotiation, err := h.service.StartNegotiation(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, negotiation)
}
