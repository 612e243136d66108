package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lendhub/service-lending/internal/application"
	"github.com/lendhub/service-lending/internal/response"
)

// RequestHandler handles HTTP requests for item request operations.
type RequestHandler struct {
	service *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all item request routes on the given router group.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.Create)
		requests.GET("/all", h.ListOthers)
		requests.GET("/:id", h.Get)
		requests.GET("", h.ListOwn)
	}
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	requesterID, ok := sharer(c)
	if !ok {
		return
	}

	var req application.CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), requesterID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	requesterID, ok := sharer(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwn(c.Request.Context(), requesterID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOthers handles GET /requests/all?from=&size=.
func (h *RequestHandler) ListOthers(c *gin.Context) {
	requesterID, ok := sharer(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.service.ListOthers(c.Request.Context(), requesterID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get handles GET /requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	viewerID, ok := sharer(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), viewerID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
