package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/retailpos/internal/catalog/application"
	"github.com/wyfcoding/retailpos/internal/catalog/domain"
	"github.com/wyfcoding/retailpos/pkg/logger"
)

// HTTP 处理器
// 负责处理商品目录相关的 HTTP 请求
type CatalogHandler struct {
	app *application.CatalogService
}

func NewCatalogHandler(app *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{app: app}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *CatalogHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/catalog")
	{
		api.GET("/categories", h.ListCategories)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:sku", h.GetProduct)
		api.POST("/products", h.AddProduct)
	}
}

// ListCategories 列出全部商品类目
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.app.Categories(c.Request.Context())})
}

// ListProducts 按类目列出商品
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	products, err := h.app.ListByCategory(c.Request.Context(), domain.Category(category))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error(c.Request.Context(), "failed to list products", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct 按 SKU 查询商品
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	sku := c.Param("sku")

	product, err := h.app.Lookup(c.Request.Context(), sku)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error(c.Request.Context(), "failed to get product", "sku", sku, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// AddProductRequest 新增商品请求
type AddProductRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Unit     string `json:"unit" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock"`
}

// AddProduct 新增商品
func (h *CatalogHandler) AddProduct(c *gin.Context) {
	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	product, err := h.app.AddProduct(c.Request.Context(), req.SKU, req.Name,
		domain.Category(req.Category), domain.Unit(req.Unit), price, req.Stock)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrDuplicateSKU):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error(c.Request.Context(), "failed to add product", "sku", req.SKU, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}
