package label

import (
	"fmt"

	"swan/internal/model"
)

// Shaper 双向文本整形（可能失败）
type Shaper interface {
	Shape(text string) (string, error)
}

// ShaperFunc 函数适配 Shaper
type ShaperFunc func(text string) (string, error)

// Shape 实现 Shaper
func (f ShaperFunc) Shape(text string) (string, error) {
	return f(text)
}

// Passthrough 不做整形，直接返回原文（前端自行处理 RTL）
var Passthrough Shaper = ShaperFunc(func(text string) (string, error) {
	return text, nil
})

// ComposeLabel 两行标签：服务名 / (科室, السعر: 价格)
func ComposeLabel(service, department, formattedPrice string) string {
	return fmt.Sprintf("%s\n(%s, %s: %s)", service, department, PriceWord, formattedPrice)
}

// Labeler 图表纵轴标签生成器
type Labeler struct {
	shaper Shaper
}

// NewLabeler 创建标签生成器，shaper 为 nil 时不整形
func NewLabeler(shaper Shaper) *Labeler {
	if shaper == nil {
		shaper = Passthrough
	}
	return &Labeler{shaper: shaper}
}

// Label 生成一行聚合结果的标签；服务或科室缺失时返回 false，该行不上图
func (l *Labeler) Label(row model.AggregateRow) (string, bool) {
	if row.Service == "" || row.Department == "" {
		return "", false
	}
	text := ComposeLabel(row.Service, row.Department, FormatPrice(row.Price))
	return l.shape(text), true
}

// shape 整形失败（含 panic）时退回未整形文本
func (l *Labeler) shape(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = text
		}
	}()

	shaped, err := l.shaper.Shape(text)
	if err != nil {
		return text
	}
	return shaped
}
