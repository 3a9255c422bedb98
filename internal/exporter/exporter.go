package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"swan/internal/model"
)

// Format 导出格式
type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// SheetName 导出工作表名
const SheetName = "Services"

// ParseFormat 解析导出格式，空值默认为 xlsx
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatParquet:
		return FormatParquet, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// FormatFromPath 按文件扩展名推断导出格式
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ContentType 下载响应的 MIME 类型
func (f Format) ContentType() string {
	if f == FormatParquet {
		return "application/vnd.apache.parquet"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Exporter 筛选结果导出器
type Exporter struct {
	columns []string
}

// NewExporter 创建导出器，columns 为源表表头（明细原样导出）
func NewExporter(columns []string) *Exporter {
	return &Exporter{columns: columns}
}

// Save 导出到文件
func (e *Exporter) Save(path string, format Format, records []model.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := e.Write(file, format, records); err != nil {
		file.Close()
		_ = os.Remove(path)
		return err
	}
	return file.Close()
}

// Write 按格式写出
func (e *Exporter) Write(w io.Writer, format Format, records []model.Record) error {
	switch format {
	case FormatParquet:
		return WriteParquet(w, records)
	case FormatXLSX:
		f, err := e.Workbook(records)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.Write(w); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported export format: %s", format)
}

// Workbook 生成明细工作簿：表头 + 原始单元格，数量与价格列可解析时写为数字
func (e *Exporter) Workbook(records []model.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(e.columns))
	numeric := make(map[int]bool)
	for i, h := range e.columns {
		header[i] = h
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(model.ColQtyCash), strings.ToLower(model.ColQtyIns), strings.ToLower(model.ColPrice):
			numeric[i] = true
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(SheetName, 1, 1, headerStyle)

	for i, r := range records {
		row := make([]interface{}, len(e.columns))
		for j := range e.columns {
			cell := ""
			if j < len(r.Values) {
				cell = r.Values[j]
			}
			row[j] = cell
			if numeric[j] {
				if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
					row[j] = v
				}
			}
		}
		axis, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, axis, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(e.columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(e.columns))
		f.SetColWidth(SheetName, "A", last, 18)
	}
	return f, nil
}
