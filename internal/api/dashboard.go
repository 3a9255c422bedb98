package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"swan/internal/dashboard"
	"swan/internal/label"
	"swan/internal/model"
)

type dashboardResponse struct {
	Title string `json:"title"`
	*dashboard.View
}

// parseSelection 从重复的查询参数读取筛选条件，空值忽略
func parseSelection(c *gin.Context) model.Selection {
	return model.Selection{
		Departments: nonEmpty(c.QueryArray("department")),
		Physicians:  nonEmpty(c.QueryArray("physician")),
		Types:       nonEmpty(c.QueryArray("type")),
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// GetDashboard 按筛选重算指标与排名
// GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}

	// 浏览器负责双向排版，JSON 中保留逻辑顺序
	view := dashboard.Recompute(h.dataset, parseSelection(c), dashboard.Options{
		TopN:   h.opts.TopN,
		Shaper: label.Passthrough,
	})

	c.JSON(http.StatusOK, dashboardResponse{
		Title: h.opts.Title,
		View:  view,
	})
}

// GetChart 渲染堆叠条形图
// GET /api/chart.png
func (h *Handler) GetChart(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}
	if h.renderer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "图表未启用"})
		return
	}

	view := dashboard.Recompute(h.dataset, parseSelection(c), dashboard.Options{
		TopN:   h.opts.TopN,
		Shaper: label.BidiShaper{},
	})

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, view.Bars); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "渲染图表失败: " + err.Error()})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
