package chart

import "swan/internal/util"

// totalOffsetRatio 合计标签与条形末端的间距（相对最大合计）
const totalOffsetRatio = 0.01

// Bar 一行堆叠条形：现金段 + 保险段
type Bar struct {
	Label     string  `json:"label"`
	Cash      float64 `json:"cash"`
	Insurance float64 `json:"insurance"`
}

// Total 条形总长
func (b Bar) Total() float64 {
	return b.Cash + b.Insurance
}

// AnnotationKind 标注类型
type AnnotationKind string

const (
	AnnotationCash      AnnotationKind = "cash"
	AnnotationInsurance AnnotationKind = "insurance"
	AnnotationTotal     AnnotationKind = "total"
)

// Annotation 条形上的数值标注
// Row 为排名顺序（0 为合计最大、显示在最上方），X 为数据坐标
type Annotation struct {
	Row  int            `json:"row"`
	X    float64        `json:"x"`
	Text string         `json:"text"`
	Kind AnnotationKind `json:"kind"`
}

// Annotate 计算每行条形的标注位置
//   - 现金段 >0：段内居中
//   - 保险段 >0：紧接现金段后、段内居中
//   - 合计：条形末端外侧，偏移最大合计的 1%
func Annotate(bars []Bar) []Annotation {
	maxTotal := MaxTotal(bars)
	offset := maxTotal * totalOffsetRatio

	out := make([]Annotation, 0, len(bars)*3)
	for i, b := range bars {
		if b.Cash > 0 {
			out = append(out, Annotation{
				Row:  i,
				X:    b.Cash / 2,
				Text: util.FormatQuantity(b.Cash),
				Kind: AnnotationCash,
			})
		}
		if b.Insurance > 0 {
			out = append(out, Annotation{
				Row:  i,
				X:    b.Cash + b.Insurance/2,
				Text: util.FormatQuantity(b.Insurance),
				Kind: AnnotationInsurance,
			})
		}
		out = append(out, Annotation{
			Row:  i,
			X:    b.Total() + offset,
			Text: util.FormatQuantity(b.Total()),
			Kind: AnnotationTotal,
		})
	}
	return out
}

// MaxTotal 所有条形中的最大合计，空输入为 0
func MaxTotal(bars []Bar) float64 {
	maxTotal := 0.0
	for _, b := range bars {
		if t := b.Total(); t > maxTotal {
			maxTotal = t
		}
	}
	return maxTotal
}
