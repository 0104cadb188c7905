package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/grandlux-hotels/service-reservation/internal/application"
	"github.com/grandlux-hotels/service-reservation/pkg/response"
)

// ClientHandler handles HTTP requests for client directory operations.
type ClientHandler struct {
	service *application.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service *application.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// RegisterRoutes registers all client routes on the given router group.
func (h *ClientHandler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("/api/v1/clients")
	{
		clients.POST("", h.CreateClient)
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

// CreateClient handles POST /api/v1/clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req application.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListClients handles GET /api/v1/clients.
func (h *ClientHandler) ListClients(c *gin.Context) {
	result, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetClient handles GET /api/v1/clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid client ID")
		return
	}

	result, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateClient handles PUT /api/v1/clients/:id.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid client ID")
		return
	}

	var req application.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteClient handles DELETE /api/v1/clients/:id.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid client ID")
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
