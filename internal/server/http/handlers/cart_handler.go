package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/checkout"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/identity"
	"github.com/polkiloo/storefront/internal/pricing"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CartHandler manages the session cart and its submission.
type CartHandler struct {
	carts   CartFacade
	catalog CatalogFacade
}

// NewCartHandler creates CartHandler instance.
func NewCartHandler(carts CartFacade, catalog CatalogFacade) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

func (h *CartHandler) cart(c *gin.Context) repository.CartRepository {
	return h.carts.Cart(c.Request.Context(), middleware.CartSessionID(c))
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(h.cart(c).Lines()))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	cart := h.cart(c)
	cart.AddItem(*product, req.Quantity)
	c.JSON(http.StatusOK, toCartResponse(cart.Lines()))
}

// UpdateItem handles PATCH /api/cart/items/:id. Quantities never drop below 1.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart := h.cart(c)
	productID := c.Param("id")
	if !cart.HasItem(productID) {
		c.Status(http.StatusNotFound)
		return
	}
	cart.UpdateQuantity(productID, *req.Increment)
	c.JSON(http.StatusOK, toCartResponse(cart.Lines()))
}

// RemoveItem handles DELETE /api/cart/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart := h.cart(c)
	cart.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, toCartResponse(cart.Lines()))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	h.cart(c).ClearItems()
	c.Status(http.StatusNoContent)
}

// Submit handles POST /api/cart/submit.
func (h *CartHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	gate := identity.Anonymous()
	if profile, ok := middleware.Profile(c); ok {
		gate = identity.Authenticated(profile)
	}

	channels := make([]model.Channel, 0, len(req.CanOpen))
	for _, name := range req.CanOpen {
		channels = append(channels, model.Channel(name))
	}

	sessionID := middleware.CartSessionID(c)
	result, err := h.carts.Submit(c.Request.Context(), checkout.Submission{
		CartID:          sessionID,
		Cart:            h.carts.Cart(c.Request.Context(), sessionID),
		Gate:            gate,
		Opener:          checkout.NewCapabilityOpener(channels...),
		Channel:         model.Channel(req.Channel),
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		var submitErr *checkout.SubmitError
		if !errors.As(err, &submitErr) {
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
			return
		}
		response := dto.SubmitErrorResponse{
			State:    string(submitErr.State),
			Error:    submitErr.Notice(),
			Redirect: submitErr.Redirect,
		}
		if submitErr.Order != nil {
			response.OrderID = submitErr.Order.ID
		}
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, response)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitResponse{
		OrderID: result.Order.ID,
		State:   string(result.State),
		Link:    result.Link,
		Message: result.Message,
		Total:   pricing.FormatAmount(result.Totals.Gross),
		Notice:  result.Notice,
	})
}

func toCartResponse(lines []model.CartLine) dto.CartResponse {
	totals := pricing.Calculate(lines)
	response := dto.CartResponse{
		Lines: make([]dto.CartLineResponse, 0, len(lines)),
		Net:   pricing.FormatAmount(totals.Net),
		VAT:   pricing.FormatAmount(totals.VAT),
		Total: pricing.FormatAmount(totals.Gross),
	}
	for _, line := range lines {
		response.Lines = append(response.Lines, dto.CartLineResponse{
			ProductID:   line.ProductID,
			Name:        line.Name,
			Description: line.Description,
			UnitPrice:   pricing.FormatAmount(line.UnitPrice),
			VATRate:     line.VATRate,
			Quantity:    line.Quantity,
			LineTotal:   pricing.FormatAmount(pricing.LineGross(line)),
		})
	}
	return response
}
