package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/podstore/backend/internal/application/mockup"
	"github.com/podstore/backend/internal/interfaces/http/dto"
)

// MockupHandler serves mockup generation and lookup endpoints
type MockupHandler struct {
	BaseHandler
	service *mockup.Service
}

// NewMockupHandler creates a new MockupHandler
func NewMockupHandler(service *mockup.Service) *MockupHandler {
	return &MockupHandler{service: service}
}

// RegisterRoutes registers mockup routes
func (h *MockupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mockups := rg.Group("/mockups")
	{
		mockups.POST("", h.Generate)
		mockups.GET("/:id", h.Get)
	}
}

// Generate renders a product mockup for the customer's artwork and stages
// a checkout context
func (h *MockupHandler) Generate(c *gin.Context) {
	var req dto.GenerateMockupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	mc, err := h.service.Generate(c.Request.Context(), mockup.GenerateParams{
		ImageURL:          req.ImageURL,
		ProductID:         req.ProductID,
		VariantID:         req.VariantID,
		AffiliateCode:     req.AffiliateCode,
		CountryCode:       req.CountryCode,
		StateCode:         req.StateCode,
		Zip:               req.Zip,
		ThirdPartyAppName: req.ThirdPartyAppName,
		ThirdPartyOrderID: req.ThirdPartyOrderID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, dto.NewMockupResponse(mc))
}

// Get returns a staged mockup context
func (h *MockupHandler) Get(c *gin.Context) {
	mc, err := h.service.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewMockupResponse(mc))
}
