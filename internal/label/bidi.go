package label

import (
	"strings"

	"github.com/01walid/goarabic"
	"golang.org/x/text/unicode/bidi"
)

// BidiShaper 阿拉伯文图表标签整形：先转换为连写的表现形式，再按 Unicode 双向算法转为视觉顺序
type BidiShaper struct{}

// Shape 实现 Shaper
func (BidiShaper) Shape(text string) (string, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		visual, err := visualLine(goarabic.ToGlyph(line))
		if err != nil {
			return "", err
		}
		lines[i] = visual
	}
	return strings.Join(lines, "\n"), nil
}

func visualLine(line string) (string, error) {
	if line == "" {
		return line, nil
	}

	dir := baseDirection(line)
	var p bidi.Paragraph
	if _, err := p.SetString(line, bidi.DefaultDirection(dir)); err != nil {
		return "", err
	}
	ordering, err := p.Order()
	if err != nil {
		return "", err
	}

	// Ordering 按逻辑顺序给出各段；RTL 段内反转，RTL 段落再整体倒排各段
	n := ordering.NumRuns()
	runs := make([]string, n)
	for i := 0; i < n; i++ {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			runs[i] = bidi.ReverseString(run.String())
		} else {
			runs[i] = run.String()
		}
	}
	if dir == bidi.RightToLeft {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}
	return strings.Join(runs, ""), nil
}

// baseDirection 由首个强方向字符决定段落方向
func baseDirection(line string) bidi.Direction {
	for _, r := range line {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return bidi.RightToLeft
		case bidi.L:
			return bidi.LeftToRight
		}
	}
	return bidi.LeftToRight
}
