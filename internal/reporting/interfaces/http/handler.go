package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/retailpos/internal/reporting/application"
	"github.com/wyfcoding/retailpos/pkg/logger"
)

// HTTP 处理器
// 负责处理经营汇总报表相关的 HTTP 请求
type ReportHandler struct {
	app *application.ReportService
}

func NewReportHandler(app *application.ReportService) *ReportHandler {
	return &ReportHandler{app: app}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *ReportHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/reports")
	{
		api.GET("/summary", h.Summary)
	}
}

// Summary 经营汇总报表
func (h *ReportHandler) Summary(c *gin.Context) {
	report, err := h.app.Summary(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "failed to build summary report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
