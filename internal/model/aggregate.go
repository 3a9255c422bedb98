package model

// PriceUnspecified 价格缺失 / NA 时的归一化取值（同时也是展示文本）
const PriceUnspecified = "غير محدد"

// GroupKey 聚合键
type GroupKey struct {
	Service    string
	Department string
	Price      string // 归一化后的价格
}

// AggregateRow 聚合结果行
type AggregateRow struct {
	Service    string  `json:"service"`
	Department string  `json:"department"`
	Price      string  `json:"price"`
	QtyCash    float64 `json:"qtyCash"`
	QtyIns     float64 `json:"qtyIns"`
	Total      float64 `json:"total"`
}

// Key 返回聚合键
func (r AggregateRow) Key() GroupKey {
	return GroupKey{Service: r.Service, Department: r.Department, Price: r.Price}
}

// Summary 指标卡数据
type Summary struct {
	InsuranceVisitors int64 `json:"insuranceVisitors" yaml:"insurance_visitors"`
	CashVisitors      int64 `json:"cashVisitors" yaml:"cash_visitors"`
	DistinctServices  int   `json:"distinctServices" yaml:"distinct_services"`
}
