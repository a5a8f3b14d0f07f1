package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/pricing"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CatalogHandler serves categories and products.
type CatalogHandler struct {
	facade CatalogFacade
}

func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, dto.CategoryResponse{ID: category.ID, Name: category.Name, Slug: category.Slug})
	}
	c.JSON(http.StatusOK, response)
}

// Products handles GET /api/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context(), model.ProductFilter{CategoryID: c.Query("category")})
	if err != nil {
		abortWithError(c, err)
		return
	}
	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Product handles GET /api/products/:id.
func (h *CatalogHandler) Product(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       pricing.FormatAmount(p.Price),
		VATRate:     p.VATRate,
		Image:       p.Image,
		Category:    p.Category,
		CategoryID:  p.CategoryID,
	}
}
