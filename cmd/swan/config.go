package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swan/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "查看或生成配置",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "写出默认 config.toml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("配置文件已存在: %s (使用 --force 覆盖)", path)
		}
		written, err := config.SaveConfig(config.DefaultConfig(), path)
		if err != nil {
			return fmt.Errorf("写入配置失败: %w", err)
		}
		fmt.Printf("已写入配置: %s\n", written)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示生效配置",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("config: %s\n", cfgInfo.Path)
		fmt.Printf("server.port: %d\n", cfg.Server.Port)
		fmt.Printf("server.dev_mode: %t\n", cfg.Server.DevMode)
		fmt.Printf("data.source: %s\n", cfg.Data.Source)
		if cfg.Data.Sheet != "" {
			fmt.Printf("data.sheet: %s\n", cfg.Data.Sheet)
		}
		fmt.Printf("data.table: %s\n", cfg.Data.Table)
		fmt.Printf("data.data_dir: %s\n", cfg.Data.DataDir)
		fmt.Printf("dashboard.title: %s\n", cfg.Dashboard.Title)
		fmt.Printf("dashboard.top_n: %d\n", cfg.Dashboard.TopN)
		fmt.Printf("chart.size: %gx%g in\n", cfg.Chart.WidthInch, cfg.Chart.HeightInch)
		if cfg.Chart.FontPath != "" {
			fmt.Printf("chart.font_path: %s\n", cfg.Chart.FontPath)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "覆盖已存在的配置文件")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
