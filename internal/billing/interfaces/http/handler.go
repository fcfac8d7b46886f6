package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/idgen"

	billingapp "github.com/wyfcoding/retailpos/internal/billing/application"
	billingdomain "github.com/wyfcoding/retailpos/internal/billing/domain"
	cartapp "github.com/wyfcoding/retailpos/internal/cart/application"
	cartdomain "github.com/wyfcoding/retailpos/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
	"github.com/wyfcoding/retailpos/pkg/logger"
)

// HTTP 处理器
// 负责处理购物车会话与开票提交相关的 HTTP 请求。
// 购物车保存在进程内会话表中，每个会话归单个收银终端独占。
type BillingHandler struct {
	carts     *cartapp.CartService
	finalizer *billingapp.FinalizerService

	mu       sync.Mutex
	sessions map[string]*cartdomain.Cart
}

func NewBillingHandler(carts *cartapp.CartService, finalizer *billingapp.FinalizerService) *BillingHandler {
	return &BillingHandler{
		carts:     carts,
		finalizer: finalizer,
		sessions:  make(map[string]*cartdomain.Cart),
	}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *BillingHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/billing")
	{
		api.POST("/carts", h.CreateCart)
		api.GET("/carts/:id", h.GetCart)
		api.POST("/carts/:id/lines", h.AddLine)
		api.PUT("/carts/:id/lines/:index", h.SetQuantity)
		api.DELETE("/carts/:id/lines/:index", h.RemoveLine)
		api.POST("/carts/:id/commit", h.Commit)
		api.GET("/invoices/:invoice_no", h.GetInvoice)
	}
}

func (h *BillingHandler) cart(id string) (*cartdomain.Cart, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cart, ok := h.sessions[id]
	return cart, ok
}

// CreateCartRequest 新建购物车会话请求
type CreateCartRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// CreateCart 新建购物车会话
func (h *BillingHandler) CreateCart(c *gin.Context) {
	var req CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart := cartdomain.NewCart()
	cart.CustomerName = req.CustomerName
	cart.CustomerPhone = req.CustomerPhone

	id := fmt.Sprintf("cart-%d", idgen.GenID())
	h.mu.Lock()
	h.sessions[id] = cart
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"cart_id": id})
}

type cartView struct {
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	Lines         []cartdomain.Line `json:"lines"`
	GrandTotal    string            `json:"grand_total"`
}

func viewOf(cart *cartdomain.Cart) cartView {
	return cartView{
		CustomerName:  cart.CustomerName,
		CustomerPhone: cart.CustomerPhone,
		Lines:         cart.Lines(),
		GrandTotal:    cart.GrandTotal().StringFixed(2),
	}
}

// GetCart 查看购物车当前内容与总额
func (h *BillingHandler) GetCart(c *gin.Context) {
	cart, ok := h.cart(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}
	c.JSON(http.StatusOK, viewOf(cart))
}

// AddLineRequest 加行请求
type AddLineRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity string `json:"qty" binding:"required"`
}

// AddLine 按 SKU 向购物车追加一行
func (h *BillingHandler) AddLine(c *gin.Context) {
	cart, ok := h.cart(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}

	var req AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	qty, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid qty"})
		return
	}

	if _, err := h.carts.AddLine(c.Request.Context(), cart, req.SKU, qty); err != nil {
		switch {
		case errors.Is(err, cartdomain.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, catalogdomain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error(c.Request.Context(), "failed to add cart line", "sku", req.SKU, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, viewOf(cart))
}

// SetQuantityRequest 改量请求
type SetQuantityRequest struct {
	Quantity string `json:"qty" binding:"required"`
}

// SetQuantity 修改购物车某行数量
func (h *BillingHandler) SetQuantity(c *gin.Context) {
	cart, ok := h.cart(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	qty, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid qty"})
		return
	}

	if err := h.carts.SetQuantity(c.Request.Context(), cart, index, qty); err != nil {
		switch {
		case errors.Is(err, cartdomain.ErrLineOutOfRange):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, cartdomain.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, viewOf(cart))
}

// RemoveLine 删除购物车某行
func (h *BillingHandler) RemoveLine(c *gin.Context) {
	cart, ok := h.cart(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}

	if err := h.carts.RemoveLine(c.Request.Context(), cart, index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, viewOf(cart))
}

// CommitRequest 提交请求
type CommitRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// Commit 定稿提交购物车，成功后销毁会话
func (h *BillingHandler) Commit(c *gin.Context) {
	id := c.Param("id")
	cart, ok := h.cart(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}

	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.finalizer.Commit(c.Request.Context(), cart, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, billingdomain.ErrEmptyCart),
			errors.Is(err, billingdomain.ErrValidationFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, billingdomain.ErrStockConflict),
			errors.Is(err, billingdomain.ErrDuplicateInvoiceNumber):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error(c.Request.Context(), "failed to commit cart", "cart_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"invoice":  result.Invoice,
		"warnings": result.Warnings,
	})
}

// GetInvoice 按发票号查询已提交的发票
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	invoiceNo := c.Param("invoice_no")

	invoice, err := h.finalizer.Lookup(c.Request.Context(), invoiceNo)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get invoice", "invoice_no", invoiceNo, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}
