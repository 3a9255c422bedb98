package dashboard

import (
	"swan/internal/calculator"
	"swan/internal/chart"
	"swan/internal/label"
	"swan/internal/model"
	"swan/internal/store"
	"swan/internal/util"
)

// Options 重算参数
type Options struct {
	TopN   int          // 排名条数，默认 20
	Shaper label.Shaper // 标签整形，nil 表示不整形
}

// Metrics 指标卡（原值 + 千分位文本）
type Metrics struct {
	model.Summary `yaml:",inline"`
	InsuranceText string `json:"insuranceText" yaml:"insurance_text"`
	CashText      string `json:"cashText" yaml:"cash_text"`
	ServicesText  string `json:"servicesText" yaml:"services_text"`
}

// Row 排名行
type Row struct {
	Rank           int     `json:"rank" yaml:"rank"`
	Service        string  `json:"service" yaml:"service"`
	Department     string  `json:"department" yaml:"department"`
	Price          string  `json:"price" yaml:"price"`
	FormattedPrice string  `json:"formattedPrice" yaml:"formatted_price"`
	Label          string  `json:"label" yaml:"label"`
	QtyCash        float64 `json:"qtyCash" yaml:"qty_cash"`
	QtyIns         float64 `json:"qtyIns" yaml:"qty_ins"`
	Total          float64 `json:"total" yaml:"total"`
}

// View 一次筛选后的完整看板数据
type View struct {
	Selection   model.Selection    `json:"selection" yaml:"selection"`
	Metrics     Metrics            `json:"metrics" yaml:"metrics"`
	Rows        []Row              `json:"rows" yaml:"rows"`
	Annotations []chart.Annotation `json:"annotations" yaml:"-"`

	Bars     []chart.Bar    `json:"-" yaml:"-"`
	Filtered []model.Record `json:"-" yaml:"-"`
}

// Recompute 每次交互都从完整快照重新计算：筛选 -> 指标 -> 聚合 -> 标签 -> 标注
// 只读访问 ds，不缓存中间结果
func Recompute(ds *store.Dataset, sel model.Selection, opts Options) *View {
	filtered := calculator.Filter(ds.Records(), sel)
	summary := calculator.Summarize(filtered)
	aggregated := calculator.Aggregate(filtered, opts.TopN)

	labeler := label.NewLabeler(opts.Shaper)

	rows := make([]Row, 0, len(aggregated))
	bars := make([]chart.Bar, 0, len(aggregated))
	for _, a := range aggregated {
		text, ok := labeler.Label(a)
		if !ok {
			continue
		}
		rows = append(rows, Row{
			Rank:           len(rows) + 1,
			Service:        a.Service,
			Department:     a.Department,
			Price:          a.Price,
			FormattedPrice: label.FormatPrice(a.Price),
			Label:          text,
			QtyCash:        a.QtyCash,
			QtyIns:         a.QtyIns,
			Total:          a.Total,
		})
		bars = append(bars, chart.Bar{
			Label:     text,
			Cash:      a.QtyCash,
			Insurance: a.QtyIns,
		})
	}

	return &View{
		Selection: sel,
		Metrics: Metrics{
			Summary:       summary,
			InsuranceText: util.FormatThousands(summary.InsuranceVisitors),
			CashText:      util.FormatThousands(summary.CashVisitors),
			ServicesText:  util.FormatThousands(int64(summary.DistinctServices)),
		},
		Rows:        rows,
		Annotations: chart.Annotate(bars),
		Bars:        bars,
		Filtered:    filtered,
	}
}
