package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/retailpos/internal/catalog/domain"
	"github.com/wyfcoding/retailpos/internal/inventory/application"
	"github.com/wyfcoding/retailpos/pkg/logger"
)

// HTTP 处理器
// 负责处理人工入库相关的 HTTP 请求
type InventoryHandler struct {
	app *application.InventoryService
}

func NewInventoryHandler(app *application.InventoryService) *InventoryHandler {
	return &InventoryHandler{app: app}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *InventoryHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/inventory")
	{
		api.POST("/inward", h.StockInward)
	}
}

// StockInwardRequest 人工入库请求
type StockInwardRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"qty" binding:"required"`
}

// StockInward 人工入库
func (h *InventoryHandler) StockInward(c *gin.Context) {
	var req StockInwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStock, err := h.app.StockInward(c.Request.Context(), req.SKU, req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error(c.Request.Context(), "failed to apply stock inward", "sku", req.SKU, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sku": req.SKU, "stock": newStock})
}
