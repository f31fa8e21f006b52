package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// productHandler handles HTTP requests related to the product catalogue.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: ps}
}

// registerProductRoutes registers routes related to products and categories.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
	}
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToProductResponse(product)))
}

func (h *productHandler) getProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err, "failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToProductResponse(product)))
}

func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if !bindQuery(c, &params) {
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list products")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToListProductResponse(products)))
}

func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("id")

	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req, userID)
	if err != nil {
		respondError(c, err, "failed to update product")
		return
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	c.JSON(http.StatusOK, dto.OK(dto.ToProductResponse(product)))
}

func (h *productHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	category, err := h.productService.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to create category")
		return
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToCategoryResponse(category)))
}

func (h *productHandler) listCategories(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	categories, err := h.productService.ListCategories(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "failed to list categories")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToListCategoryResponse(categories)))
}
