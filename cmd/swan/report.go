package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"swan/internal/dashboard"
	"swan/internal/label"
	"swan/internal/util"
)

var (
	reportFormat string
	reportTopN   int
)

type reportDoc struct {
	Title           string `json:"title" yaml:"title"`
	Source          string `json:"source" yaml:"source"`
	*dashboard.View `yaml:",inline"`
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "输出指标与服务排名",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}

		topN := cfg.Dashboard.TopN
		if reportTopN > 0 {
			topN = reportTopN
		}
		view := dashboard.Recompute(ds, currentSelection(), dashboard.Options{
			TopN:   topN,
			Shaper: label.Passthrough,
		})

		return writeReport(cmd.OutOrStdout(), reportFormat, reportDoc{
			Title:  cfg.Dashboard.Title,
			Source: ds.Source,
			View:   view,
		})
	},
}

func writeReport(w io.Writer, format string, doc reportDoc) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "", "text":
		writeTextReport(w, doc)
		return nil
	}
	return fmt.Errorf("unsupported report format: %s (use text, json or yaml)", format)
}

func writeTextReport(w io.Writer, doc reportDoc) {
	m := doc.Metrics
	fmt.Fprintf(w, "%s\n", doc.Title)
	fmt.Fprintf(w, "数据源: %s\n\n", doc.Source)
	fmt.Fprintf(w, "Insurance visitors: %s\n", m.InsuranceText)
	fmt.Fprintf(w, "Cash visitors:      %s\n", m.CashText)
	fmt.Fprintf(w, "Services:           %s\n\n", m.ServicesText)

	if len(doc.Rows) == 0 {
		fmt.Fprintln(w, "(无数据)")
		return
	}
	for _, r := range doc.Rows {
		fmt.Fprintf(w, "%2d. %s | %s | %s | cash %s | ins %s | total %s\n",
			r.Rank, r.Service, r.Department, r.FormattedPrice,
			util.FormatQuantity(r.QtyCash), util.FormatQuantity(r.QtyIns), util.FormatQuantity(r.Total))
	}
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "输出格式 text|json|yaml")
	reportCmd.Flags().IntVar(&reportTopN, "top", 0, "排名条数 (默认取配置 dashboard.top_n)")
	rootCmd.AddCommand(reportCmd)
}
