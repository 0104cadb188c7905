package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/grandlux-hotels/service-reservation/internal/application"
	"github.com/grandlux-hotels/service-reservation/pkg/response"
)

// ReservationHandler handles HTTP requests for reservation operations.
type ReservationHandler struct {
	service *application.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *application.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// RegisterRoutes registers all reservation routes on the given router group.
func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup) {
	reservations := r.Group("/api/v1/reservations")
	{
		reservations.POST("", h.CreateReservation)
		reservations.GET("", h.ListReservations)
		reservations.GET("/stats", h.GetStats)
		reservations.GET("/:id", h.GetReservation)
		reservations.PUT("/:id", h.UpdateReservation)
		reservations.POST("/:id/cancel", h.CancelReservation)
		reservations.DELETE("/:id", h.DeleteReservation)
	}
}

// CreateReservation handles POST /api/v1/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req application.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListReservations handles GET /api/v1/reservations.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	result, err := h.service.ListReservations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetReservation handles GET /api/v1/reservations/:id.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	result, err := h.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateReservation handles PUT /api/v1/reservations/:id.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	var req application.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateReservation(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CancelReservation handles POST /api/v1/reservations/:id/cancel.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	result, err := h.service.CancelReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteReservation handles DELETE /api/v1/reservations/:id.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	if err := h.service.DeleteReservation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetStats handles GET /api/v1/reservations/stats.
func (h *ReservationHandler) GetStats(c *gin.Context) {
	result, err := h.service.GetReservationStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
