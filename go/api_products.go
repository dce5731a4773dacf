package ecommerceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/speira/ecommerce-api/internal/domains/products/adapters/http/mapper"
	producttypes "github.com/speira/ecommerce-api/internal/domains/products/application/types"
	productsports "github.com/speira/ecommerce-api/internal/domains/products/ports"
)

// ProductAPI wires HTTP transport with the products bounded context service.
type ProductAPI struct {
	service productsports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service productsports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /v1/products
// Add a new catalog entry
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload producthttpmapper.CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), producthttpmapper.ToCreateInput(payload))
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, producthttpmapper.FromDomainProduct(product))
}

// Get /v1/products/:productId
// Find product by ID
func (api *ProductAPI) GetProductById(c *gin.Context) {
	product, err := api.service.GetProductByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(product))
}

// Get /v1/products
// List the catalog
func (api *ProductAPI) ListProducts(c *gin.Context) {
	input := producttypes.ListProductsInput{
		Limit:     parseLimit(c),
		NextToken: c.Query("nextToken"),
	}
	page, err := api.service.ListProducts(c.Request.Context(), input)
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromPage(page))
}

// Put /v1/products/:productId
// Update an existing catalog entry
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	var payload producthttpmapper.UpdateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), producthttpmapper.ToUpdateInput(c.Param("productId"), payload))
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(product))
}

// Delete /v1/products/:productId
// Delete a catalog entry
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	if err := api.service.DeleteProduct(c.Request.Context(), c.Param("productId")); err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
