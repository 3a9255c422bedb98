package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"swan/internal/store"
)

var (
	// ErrMissingColumn 源表缺少必需列
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupportedFormat 无法识别的数据文件类型
	ErrUnsupportedFormat = errors.New("unsupported data format")
	// ErrEmptyTable 源表没有表头
	ErrEmptyTable = errors.New("empty table")
)

// 数据源格式
const (
	FormatXLSX    = "xlsx"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
	FormatSQLite  = "sqlite"
)

// Options 加载选项
type Options struct {
	Sheet string // xlsx 工作表名，空则取第一个
	Table string // sqlite 表名，空则为 services
}

// DetectFormat 按扩展名判断数据源格式
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load 一次性读取整张表并构建只读快照；任何结构或数据错误都不做部分加载
func Load(path string, opts Options) (*store.Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var header []string
	var rows [][]string

	switch format {
	case FormatXLSX:
		header, rows, err = readXLSX(path, opts.Sheet)
	case FormatCSV:
		header, rows, err = readCSV(path)
	case FormatParquet:
		header, rows, err = readParquet(path)
	case FormatSQLite:
		header, rows, err = readSQLite(path, opts.Table)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}

	records, err := buildRecords(header, rows)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}

	return store.NewDataset(path, format, header, records), nil
}
