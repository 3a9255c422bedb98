package loader

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"swan/internal/model"
)

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名：去首尾空白、压缩内部空白、忽略大小写
func NormalizeColumnName(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.TrimSpace(name)
	name = spaceRe.ReplaceAllString(name, " ")
	return strings.ToLower(name)
}

// columnIndex 必需列在表头中的位置
type columnIndex map[string]int

func resolveColumns(header []string) (columnIndex, error) {
	if len(header) == 0 {
		return nil, ErrEmptyTable
	}

	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeColumnName(h)
		if _, ok := byName[key]; !ok {
			byName[key] = i
		}
	}

	idx := make(columnIndex, len(model.RequiredColumns))
	var missing []string
	for _, col := range model.RequiredColumns {
		i, ok := byName[NormalizeColumnName(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// buildRecords 将表格文本转换为记录；整行为空的行跳过
func buildRecords(header []string, rows [][]string) ([]model.Record, error) {
	idx, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		rowNo := i + 1

		getValue := func(col string) string {
			if j := idx[col]; j < len(row) {
				return row[j]
			}
			return ""
		}

		cash, err := parseQuantity(getValue(model.ColQtyCash))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s %q", rowNo, model.ColQtyCash, getValue(model.ColQtyCash))
		}
		ins, err := parseQuantity(getValue(model.ColQtyIns))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s %q", rowNo, model.ColQtyIns, getValue(model.ColQtyIns))
		}

		values := make([]string, len(header))
		copy(values, row)

		records = append(records, model.Record{
			RowNo:      rowNo,
			Department: getValue(model.ColDepartment),
			Physician:  getValue(model.ColPhysician),
			Type:       getValue(model.ColType),
			Service:    getValue(model.ColService),
			Price:      getValue(model.ColPrice),
			QtyCash:    cash,
			QtyIns:     ins,
			Values:     values,
		})
	}
	return records, nil
}

var errNotCount = errors.New("quantity must be a finite non-negative number")

// parseQuantity 空值按 0 处理，允许千分位逗号；NaN、Inf 与负数视为无效
func parseQuantity(val string) (float64, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, nil
	}
	val = strings.ReplaceAll(val, ",", "")
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, errNotCount
	}
	return v, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
