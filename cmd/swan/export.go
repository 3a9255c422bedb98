package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"swan/internal/calculator"
	"swan/internal/exporter"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出筛选后的明细 (xlsx / parquet，按扩展名)",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := exporter.FormatFromPath(exportOutput)
		if err != nil {
			return err
		}

		ds, err := loadDataset()
		if err != nil {
			return err
		}

		filtered := calculator.Filter(ds.Records(), currentSelection())
		if err := exporter.NewExporter(ds.Columns).Save(exportOutput, format, filtered); err != nil {
			return err
		}
		fmt.Printf("已导出 %d 行: %s\n", len(filtered), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "services.xlsx", "输出路径 (.xlsx / .parquet)")
	rootCmd.AddCommand(exportCmd)
}
