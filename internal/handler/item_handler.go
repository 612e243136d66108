package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lendhub/service-lending/internal/application"
	"github.com/lendhub/service-lending/internal/response"
)

// ItemHandler handles HTTP requests for item and comment operations.
type ItemHandler struct {
	items    *application.ItemService
	comments *application.CommentService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items *application.ItemService, comments *application.CommentService) *ItemHandler {
	return &ItemHandler{items: items, comments: comments}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	{
		items.POST("", h.Create)
		items.PATCH("/:id", h.Update)
		items.GET("/search", h.Search)
		items.GET("/:id", h.Get)
		items.GET("", h.ListForOwner)
		items.POST("/:id/comment", h.CreateComment)
	}
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := sharer(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update handles PATCH /items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	ownerID, ok := sharer(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.Update(c.Request.Context(), ownerID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	viewerID, ok := sharer(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.items.Get(c.Request.Context(), itemID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListForOwner handles GET /items?from=&size=.
func (h *ItemHandler) ListForOwner(c *gin.Context) {
	ownerID, ok := sharer(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.items.ListForOwner(c.Request.Context(), ownerID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Search handles GET /items/search?text=&from=&size=.
func (h *ItemHandler) Search(c *gin.Context) {
	from, size, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.items.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateComment handles POST /items/:id/comment.
func (h *ItemHandler) CreateComment(c *gin.Context) {
	authorID, ok := sharer(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.comments.Create(c.Request.Context(), authorID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
