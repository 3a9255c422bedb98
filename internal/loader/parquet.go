package loader

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"swan/internal/model"
)

// readParquet 读取导出格式的 parquet 文件，转为与表格一致的文本行
func readParquet(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[model.ServiceRow](f)
	defer reader.Close()

	buf := make([]model.ServiceRow, reader.NumRows())
	n := 0
	for n < len(buf) {
		m, err := reader.Read(buf[n:])
		n += m
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read parquet: %w", err)
		}
		if m == 0 {
			break
		}
	}

	header := make([]string, len(model.RequiredColumns))
	copy(header, model.RequiredColumns)

	rows := make([][]string, 0, n)
	for _, r := range buf[:n] {
		price := ""
		if r.Price != nil {
			price = *r.Price
		}
		rows = append(rows, []string{
			r.Department,
			r.Physician,
			r.Type,
			r.Service,
			price,
			strconv.FormatFloat(r.QtyCash, 'f', -1, 64),
			strconv.FormatFloat(r.QtyIns, 'f', -1, 64),
		})
	}
	return header, rows, nil
}
