package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultTitle 图表标题
const DefaultTitle = "Top 20 Most Visited Services by Customers"

// Options 渲染参数
type Options struct {
	Title      string
	WidthInch  float64
	HeightInch float64
	// FontPath 可选 TTF 字体（需覆盖阿拉伯字母）
	FontPath string
}

// DefaultOptions 默认 14x12 英寸
func DefaultOptions() Options {
	return Options{
		Title:      DefaultTitle,
		WidthInch:  14,
		HeightInch: 12,
	}
}

// Renderer 堆叠横向条形图渲染器
type Renderer struct {
	opts Options
}

var fontMu sync.Mutex

// NewRenderer 创建渲染器；配置了字体时注册为 gonum/plot 默认字体
func NewRenderer(opts Options) (*Renderer, error) {
	def := DefaultOptions()
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if opts.WidthInch <= 0 {
		opts.WidthInch = def.WidthInch
	}
	if opts.HeightInch <= 0 {
		opts.HeightInch = def.HeightInch
	}

	if opts.FontPath != "" {
		if err := registerFont(opts.FontPath); err != nil {
			return nil, err
		}
	}

	return &Renderer{opts: opts}, nil
}

func registerFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read chart font: %w", err)
	}
	ttf, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse chart font: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	fnt := font.Font{Typeface: font.Typeface(name)}

	fontMu.Lock()
	defer fontMu.Unlock()
	font.DefaultCache.Add([]font.Face{{Font: fnt, Face: ttf}})
	plot.DefaultFont = fnt
	plotter.DefaultFont = fnt
	return nil
}

// Plot 构建图表：现金段在前，保险段堆叠其后，合计最大的行在最上方
func (r *Renderer) Plot(bars []Bar) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = r.opts.Title
	p.X.Label.Text = "Total Quantity"
	p.X.Min = 0

	n := len(bars)
	if n == 0 {
		p.HideY()
		return p, nil
	}

	cash := make(plotter.Values, n)
	ins := make(plotter.Values, n)
	labels := make([]string, n)
	for i, b := range bars {
		pos := position(i, n)
		cash[pos] = b.Cash
		ins[pos] = b.Insurance
		labels[pos] = b.Label
	}

	barWidth := vg.Length(r.opts.HeightInch) * vg.Inch * 0.6 / vg.Length(n+1)

	cashBars, err := plotter.NewBarChart(cash, barWidth)
	if err != nil {
		return nil, fmt.Errorf("cash bars: %w", err)
	}
	cashBars.Horizontal = true
	cashBars.Color = plotutil.Color(0)
	cashBars.LineStyle.Width = vg.Length(0)

	insBars, err := plotter.NewBarChart(ins, barWidth)
	if err != nil {
		return nil, fmt.Errorf("insurance bars: %w", err)
	}
	insBars.Horizontal = true
	insBars.Color = plotutil.Color(1)
	insBars.LineStyle.Width = vg.Length(0)
	insBars.StackOn(cashBars)

	p.Add(cashBars, insBars)
	p.Legend.Add("Cash", cashBars)
	p.Legend.Add("Insurance", insBars)
	p.Legend.Top = false
	p.Legend.Left = false
	p.NominalY(labels...)

	annotations, err := annotationLabels(Annotate(bars), n)
	if err != nil {
		return nil, err
	}
	for _, l := range annotations {
		p.Add(l)
	}

	// 为合计标签留出右侧空间
	p.X.Max = MaxTotal(bars) * 1.08
	return p, nil
}

// position 排名第 i 的行在 y 轴上的位置（倒置，使第一名在顶部）
func position(i, n int) int {
	return n - 1 - i
}

func annotationLabels(annotations []Annotation, n int) ([]*plotter.Labels, error) {
	var inside, totals plotter.XYLabels
	for _, a := range annotations {
		xy := plotter.XY{X: a.X, Y: float64(position(a.Row, n))}
		if a.Kind == AnnotationTotal {
			totals.XYs = append(totals.XYs, xy)
			totals.Labels = append(totals.Labels, a.Text)
			continue
		}
		inside.XYs = append(inside.XYs, xy)
		inside.Labels = append(inside.Labels, a.Text)
	}

	var out []*plotter.Labels
	if len(inside.XYs) > 0 {
		l, err := plotter.NewLabels(inside)
		if err != nil {
			return nil, fmt.Errorf("segment labels: %w", err)
		}
		for i := range l.TextStyle {
			l.TextStyle[i].Color = color.White
			l.TextStyle[i].XAlign = draw.XCenter
			l.TextStyle[i].YAlign = draw.YCenter
		}
		out = append(out, l)
	}
	if len(totals.XYs) > 0 {
		l, err := plotter.NewLabels(totals)
		if err != nil {
			return nil, fmt.Errorf("total labels: %w", err)
		}
		for i := range l.TextStyle {
			l.TextStyle[i].Color = color.Black
			l.TextStyle[i].XAlign = draw.XLeft
			l.TextStyle[i].YAlign = draw.YCenter
		}
		out = append(out, l)
	}
	return out, nil
}

// Render 渲染为 PNG 写入 w
func (r *Renderer) Render(w io.Writer, bars []Bar) error {
	p, err := r.Plot(bars)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(r.opts.WidthInch)*vg.Inch, vg.Length(r.opts.HeightInch)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Save 渲染到文件，格式由扩展名决定（png/svg/pdf）
func (r *Renderer) Save(path string, bars []Bar) error {
	p, err := r.Plot(bars)
	if err != nil {
		return err
	}
	return p.Save(vg.Length(r.opts.WidthInch)*vg.Inch, vg.Length(r.opts.HeightInch)*vg.Inch, path)
}
