package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/podstore/backend/internal/application/catalog"
	"github.com/podstore/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the synced product catalog
type CatalogHandler struct {
	BaseHandler
	service *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:productID", h.Get)
		products.POST("/sync", h.Sync)
	}
}

// List returns every synced catalog product
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]dto.CatalogProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, dto.NewCatalogProductResponse(&products[idx]))
	}
	h.Success(c, responses)
}

// Get returns a synced product by its provider product ID
func (h *CatalogHandler) Get(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil || productID <= 0 {
		h.BadRequest(c, "Product ID must be a positive integer")
		return
	}

	product, err := h.service.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewCatalogProductResponse(product))
}

// Sync pulls the provider catalog into the local store
func (h *CatalogHandler) Sync(c *gin.Context) {
	synced, err := h.service.Sync(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"synced": synced})
}
