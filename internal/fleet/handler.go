package fleet

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
	trucks := rg.Group("/trucks")
	{
		trucks.GET("", h.List)
		trucks.POST("", h.Register)
		trucks.GET("/:id", h.Get)
		trucks.PUT("/:id", h.Update)
		trucks.PUT("/:id/location", h.UpdateLocation)
		trucks.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var fleetID *uuid.UUID
	if fleetStr := c.Query("fleet_id"); fleetStr != "" {
		id, err := uuid.Parse(fleetStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fleet_id"})
			return
		}
		fleetID = &id
	}

	trucks, err := h.service.ListTrucks(c.Request.Context(), fleetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, trucks)
}

func (h *Handler) Register(c *gin.Context) {
	var truck Truck
	if err := c.ShouldBindJSON(&truck); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.RegisterTruck(c.Request.Context(), &truck)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	truck, err := h.service.GetTruck(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if truck == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "truck not found"})
		return
	}

	c.JSON(http.StatusOK, truck)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var truck Truck
	if err := c.ShouldBindJSON(&truck); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	truck.ID = id

	if err := h.service.UpdateTruck(c.Request.Context(), &truck); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, truck)
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		CurrentLocation string  `json:"current_location"`
		IdleHours       float64 `json:"idle_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	truck, err := h.service.UpdateLocation(c.Request.Context(), id, req.CurrentLocation, req.IdleHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, truck)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.DeleteTruck(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
