package model

// ServiceRow Parquet 行结构（导出与加载共用）
type ServiceRow struct {
	Department string  `parquet:"department"`
	Physician  string  `parquet:"physician"`
	Type       string  `parquet:"type"`
	Service    string  `parquet:"service"`
	Price      *string `parquet:"price,optional"`
	QtyCash    float64 `parquet:"qty_cash"`
	QtyIns     float64 `parquet:"qty_ins"`
}
