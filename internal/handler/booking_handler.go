package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lendhub/service-lending/internal/application"
	"github.com/lendhub/service-lending/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("/:itemId", h.Create)
		bookings.PATCH("/:id", h.Approve)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:id", h.Get)
		bookings.GET("", h.ListForBooker)
	}
}

// Create handles POST /bookings/:itemId.
func (h *BookingHandler) Create(c *gin.Context) {
	bookerID, ok := sharer(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), itemID, bookerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Approve handles PATCH /bookings/:id?approved=true|false.
func (h *BookingHandler) Approve(c *gin.Context) {
	userID, ok := sharer(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "invalid approved parameter")
		return
	}

	result, err := h.service.Approve(c.Request.Context(), bookingID, userID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := sharer(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListForBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	userID, ok := sharer(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	state := c.DefaultQuery("state", "ALL")

	result, err := h.service.ListForBooker(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListForOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	userID, ok := sharer(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	state := c.DefaultQuery("state", "ALL")

	result, err := h.service.ListForOwner(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
