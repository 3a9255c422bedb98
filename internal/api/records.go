package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"swan/internal/calculator"
)

const (
	defaultPageSize = 200
	maxPageSize     = 2000
)

type recordRow struct {
	RowNo  int      `json:"rowNo"`
	Values []string `json:"values"`
}

type listRecordsResponse struct {
	Columns  []string    `json:"columns"`
	Items    []recordRow `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// ListRecords 筛选后的明细（原始单元格，按表头顺序）
// GET /api/records
func (h *Handler) ListRecords(c *gin.Context) {
	if !h.requireDataset(c) {
		return
	}

	filtered := calculator.Filter(h.dataset.Records(), parseSelection(c))

	page := parseIntWithDefault(c.Query("page"), 1)
	pageSize := parseIntWithDefault(c.Query("pageSize"), defaultPageSize)
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]recordRow, 0, end-start)
	for _, r := range filtered[start:end] {
		items = append(items, recordRow{RowNo: r.RowNo, Values: r.Values})
	}

	c.JSON(http.StatusOK, listRecordsResponse{
		Columns:  h.dataset.Columns,
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func parseIntWithDefault(v string, d int) int {
	if v == "" {
		return d
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return i
}
