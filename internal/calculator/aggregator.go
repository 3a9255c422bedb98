package calculator

import (
	"sort"

	"swan/internal/model"
)

// DefaultTopN 图表展示的服务数量
const DefaultTopN = 20

// NormalizePrice 将 NA / N/A / 空 统一为“未指定”
// 只做精确匹配，带空格的 " NA " 保留原值，由 FormatPrice 再归类
func NormalizePrice(raw string) string {
	switch raw {
	case "", "NA", "N/A":
		return model.PriceUnspecified
	}
	return raw
}

// Aggregate 按 (服务, 科室, 价格) 分组汇总现金 / 保险数量，按合计倒序取前 topN
// 合计相同的分组保持其在源数据中首次出现的顺序
func Aggregate(records []model.Record, topN int) []model.AggregateRow {
	if topN <= 0 {
		topN = DefaultTopN
	}

	index := make(map[model.GroupKey]int)
	rows := make([]model.AggregateRow, 0)

	for _, r := range records {
		// 服务或科室缺失的记录不参与分组
		if r.Service == "" || r.Department == "" {
			continue
		}
		key := model.GroupKey{
			Service:    r.Service,
			Department: r.Department,
			Price:      NormalizePrice(r.Price),
		}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, model.AggregateRow{
				Service:    key.Service,
				Department: key.Department,
				Price:      key.Price,
			})
		}
		rows[i].QtyCash += r.QtyCash
		rows[i].QtyIns += r.QtyIns
	}

	for i := range rows {
		rows[i].Total = rows[i].QtyCash + rows[i].QtyIns
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Total > rows[b].Total
	})

	if len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}
