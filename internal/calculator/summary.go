package calculator

import "swan/internal/model"

// Summarize 计算三个指标卡：保险人次、现金人次、服务种类数
func Summarize(records []model.Record) model.Summary {
	var ins, cash float64
	services := make(map[string]struct{})

	for _, r := range records {
		ins += r.QtyIns
		cash += r.QtyCash
		if r.Service != "" {
			services[r.Service] = struct{}{}
		}
	}

	return model.Summary{
		InsuranceVisitors: int64(ins),
		CashVisitors:      int64(cash),
		DistinctServices:  len(services),
	}
}
