package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OrderHandler lists the orders of the current customer.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := orderFilter(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), CurrentUser(c), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Recent handles GET /api/orders/recent. It serves orders submitted by this
// process without reaching the database.
func (h *OrderHandler) Recent(c *gin.Context) {
	c.JSON(http.StatusOK, toOrderResponses(h.facade.RecentOrders(CurrentUser(c).ID)))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}
