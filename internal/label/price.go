package label

import (
	"strings"

	"github.com/shopspring/decimal"

	"swan/internal/util"
)

// 价格展示文本
const (
	Unspecified   = "غير محدد"
	Free          = "مجاناً"
	VariablePrice = "سعر متغير"
	Currency      = "ريال"
	PriceWord     = "السعر"
)

var keywordPrices = map[string]string{
	"free": Free,
	"var":  VariablePrice,
}

// FormatPrice 价格展示规则（按顺序首个命中）：
//  1. 空 / NA / N/A -> 未指定
//  2. 可解析为数字：>0 取整数部分千分位加货币单位，<=0 为免费
//  3. 其他文本按小写查表 free / var，查不到为未指定
func FormatPrice(raw string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Unspecified
		}
	}()

	s := strings.TrimSpace(raw)
	switch s {
	case "", "NA", "N/A":
		return Unspecified
	}

	if d, err := decimal.NewFromString(s); err == nil {
		if !d.IsPositive() {
			return Free
		}
		whole := d.Truncate(0)
		if !whole.BigInt().IsInt64() {
			return util.GroupDigits(whole.BigInt().String()) + " " + Currency
		}
		return util.FormatThousands(whole.IntPart()) + " " + Currency
	}

	if v, ok := keywordPrices[strings.ToLower(s)]; ok {
		return v
	}
	return Unspecified
}
