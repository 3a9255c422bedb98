package util

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatThousands 千分位格式化整数，如 1500 -> "1,500"
func FormatThousands(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatQuantity 数量截断为整数后千分位格式化
func FormatQuantity(v float64) string {
	return FormatThousands(int64(v))
}

// GroupDigits 为十进制整数字符串插入千分位，超出 int64 范围的值也适用
func GroupDigits(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
