package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"swan/internal/calculator"
	"swan/internal/exporter"
	"swan/internal/model"
)

const exportTTL = 10 * time.Minute

type exportRequest struct {
	Format      string   `json:"format"`
	Departments []string `json:"departments"`
	Physicians  []string `json:"physicians"`
	Types       []string `json:"types"`
}

type exportResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	Format      string    `json:"format"`
	Rows        int       `json:"rows"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Export 导出当前筛选结果，返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}

	var req exportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
			return
		}
	}

	format, err := exporter.ParseFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sel := model.Selection{
		Departments: nonEmpty(req.Departments),
		Physicians:  nonEmpty(req.Physicians),
		Types:       nonEmpty(req.Types),
	}
	filtered := calculator.Filter(h.dataset.Records(), sel)

	tmp, err := os.CreateTemp(h.opts.ExportDir, "swan_export_*."+string(format))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建导出文件失败: " + err.Error()})
		return
	}
	tempPath := tmp.Name()
	tmp.Close()

	exp := exporter.NewExporter(h.dataset.Columns)
	if err := exp.Save(tempPath, format, filtered); err != nil {
		_ = os.Remove(tempPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}

	token, expiresAt := h.downloads.put(tempPath, format, exportTTL)
	prefix := strings.TrimSuffix(c.Request.URL.Path, "/export")

	c.JSON(http.StatusOK, exportResponse{
		DownloadURL: fmt.Sprintf("%s/export/download/%s", prefix, token),
		Format:      string(format),
		Rows:        len(filtered),
		ExpiresAt:   expiresAt,
	})
}

// DownloadExport 下载导出文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.format, item.createdAt))
	c.Header("Content-Type", item.format.ContentType())
	c.File(item.filePath)

	_ = os.Remove(item.filePath)
}

func buildExportContentDisposition(format exporter.Format, at time.Time) string {
	name := fmt.Sprintf("swan_services_%s.%s", at.Format("20060102_150405"), format)
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", name, url.PathEscape(name))
}
