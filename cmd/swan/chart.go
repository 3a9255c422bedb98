package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"swan/internal/chart"
	"swan/internal/dashboard"
	"swan/internal/label"
)

var chartOutput string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "渲染服务排名堆叠条形图 (PNG)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}

		renderer, err := newRenderer()
		if err != nil {
			return err
		}

		view := dashboard.Recompute(ds, currentSelection(), dashboard.Options{
			TopN:   cfg.Dashboard.TopN,
			Shaper: label.BidiShaper{},
		})
		if err := renderer.Save(chartOutput, view.Bars); err != nil {
			return err
		}
		fmt.Printf("已生成图表: %s (%d 项)\n", chartOutput, len(view.Bars))
		return nil
	},
}

func newRenderer() (*chart.Renderer, error) {
	return chart.NewRenderer(chart.Options{
		WidthInch:  cfg.Chart.WidthInch,
		HeightInch: cfg.Chart.HeightInch,
		FontPath:   cfg.Chart.FontPath,
	})
}

func newDefaultRenderer() (*chart.Renderer, error) {
	return chart.NewRenderer(chart.Options{
		WidthInch:  cfg.Chart.WidthInch,
		HeightInch: cfg.Chart.HeightInch,
	})
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "chart.png", "输出 PNG 路径")
	rootCmd.AddCommand(chartCmd)
}
