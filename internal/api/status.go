package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"swan/internal/model"
)

// StatusResponse 数据集状态响应
type StatusResponse struct {
	Initialized bool     `json:"initialized"` // 是否已加载数据
	DatasetID   string   `json:"datasetId"`
	Source      string   `json:"source"`
	Format      string   `json:"format"`
	LoadedAt    string   `json:"loadedAt"`
	RecordCount int      `json:"recordCount"`
	Columns     []string `json:"columns"`
}

// GetStatus 获取数据集状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	if h.dataset == nil {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized: true,
		DatasetID:   h.dataset.ID,
		Source:      h.dataset.Source,
		Format:      h.dataset.Format,
		LoadedAt:    h.dataset.LoadedAt.Format(time.RFC3339),
		RecordCount: h.dataset.Count(),
		Columns:     h.dataset.Columns,
	})
}

// OptionsResponse 筛选候选项
type OptionsResponse struct {
	Title       string   `json:"title"`
	Departments []string `json:"departments"`
	Physicians  []string `json:"physicians"`
	Types       []string `json:"types"`
}

// GetOptions 获取科室、医生、类型候选项
// GET /api/options
func (h *Handler) GetOptions(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}

	types := make([]string, 0, len(model.KnownTypes))
	for _, t := range model.KnownTypes {
		types = append(types, string(t))
	}

	c.JSON(http.StatusOK, OptionsResponse{
		Title:       h.opts.Title,
		Departments: h.dataset.Departments(),
		Physicians:  h.dataset.Physicians(),
		Types:       types,
	})
}

func (h *Handler) requireDataset(c *gin.Context) bool {
	if h.dataset == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "数据未加载"})
		return false
	}
	return true
}
