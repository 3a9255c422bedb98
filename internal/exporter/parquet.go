package exporter

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"swan/internal/model"
)

const flushInterval = 100_000

// WriteParquet 以 snappy 压缩写出 parquet，价格为空时写 null
func WriteParquet(w io.Writer, records []model.Record) error {
	writer := parquet.NewGenericWriter[model.ServiceRow](w,
		parquet.Compression(&parquet.Snappy),
	)

	for i, r := range records {
		row := model.ServiceRow{
			Department: r.Department,
			Physician:  r.Physician,
			Type:       r.Type,
			Service:    r.Service,
			QtyCash:    r.QtyCash,
			QtyIns:     r.QtyIns,
		}
		if r.Price != "" {
			price := r.Price
			row.Price = &price
		}
		if _, err := writer.Write([]model.ServiceRow{row}); err != nil {
			writer.Close()
			return fmt.Errorf("write parquet row: %w", err)
		}
		if (i+1)%flushInterval == 0 {
			if err := writer.Flush(); err != nil {
				writer.Close()
				return fmt.Errorf("flush parquet: %w", err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
