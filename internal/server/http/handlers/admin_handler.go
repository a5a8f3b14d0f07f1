package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// Streamer upgrades a request to a live order event stream.
type Streamer interface {
	Serve(w http.ResponseWriter, r *http.Request) error
}

// AdminHandler exposes order management to administrators.
type AdminHandler struct {
	orders   OrderFacade
	admin    AdminFacade
	streamer Streamer
}

// NewAdminHandler creates AdminHandler instance. streamer may be nil.
func NewAdminHandler(orders OrderFacade, admin AdminFacade, streamer Streamer) *AdminHandler {
	return &AdminHandler{orders: orders, admin: admin, streamer: streamer}
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(c *gin.Context) {
	filter, err := orderFilter(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	filter.UserID = c.Query("user")

	orders, err := h.admin.AllOrders(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/admin/orders/:id.
func (h *AdminHandler) Get(c *gin.Context) {
	order, err := h.orders.Order(c.Request.Context(), CurrentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.admin.UpdateOrderStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateItems handles PATCH /api/admin/orders/:id/items.
func (h *AdminHandler) UpdateItems(c *gin.Context) {
	var req dto.UpdateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.ItemQuantity, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.ItemQuantity{ItemID: item.ItemID, Quantity: item.Quantity})
	}

	order, err := h.admin.UpdateOrderItems(c.Request.Context(), c.Param("id"), items)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Stream handles GET /api/admin/orders/stream.
func (h *AdminHandler) Stream(c *gin.Context) {
	if h.streamer == nil {
		c.Status(http.StatusNotImplemented)
		return
	}
	if err := h.streamer.Serve(c.Writer, c.Request); err != nil {
		_ = c.Error(err)
		if !c.Writer.Written() {
			c.Status(http.StatusBadRequest)
		}
	}
}
