package api

import (
	"github.com/gin-gonic/gin"

	"swan/internal/calculator"
	"swan/internal/chart"
	"swan/internal/store"
)

// Options 处理器参数
type Options struct {
	Title     string // 看板标题
	TopN      int    // 排名条数
	ExportDir string // 导出临时文件目录，空则使用系统临时目录
}

// Handler API 处理器
type Handler struct {
	dataset   *store.Dataset
	renderer  *chart.Renderer
	opts      Options
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(ds *store.Dataset, renderer *chart.Renderer, opts Options) *Handler {
	if opts.TopN <= 0 {
		opts.TopN = calculator.DefaultTopN
	}
	return &Handler{
		dataset:   ds,
		renderer:  renderer,
		opts:      opts,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 数据集状态
	router.GET("/status", h.GetStatus)
	// 侧边栏候选项
	router.GET("/options", h.GetOptions)

	// 看板：指标 + 排名 + 图表
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/chart.png", h.GetChart)

	// 明细表
	router.GET("/records", h.ListRecords)

	// 数据导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
