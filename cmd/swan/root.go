package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swan/internal/config"
	"swan/internal/loader"
	"swan/internal/model"
	"swan/internal/store"
)

var (
	// 全局参数
	cfgFile     string
	dataSource  string
	departments []string
	physicians  []string
	types       []string

	// 已加载配置
	cfg     *config.AppConfig
	cfgInfo config.LoadConfigInfo
)

var rootCmd = &cobra.Command{
	Use:           "swan",
	Short:         "Swan Services Analysis: 服务访问量看板",
	Long:          `swan 读取服务明细表（xlsx / csv / parquet / sqlite），按科室、医生、类型筛选，输出访问量最高的服务排名、指标与堆叠条形图。`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 命令入口
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "配置文件 (默认为可执行文件同目录下的 config.toml)")
	f.StringVar(&dataSource, "data", "", "数据源路径 (覆盖配置文件 data.source)")
	f.StringArrayVar(&departments, "department", nil, "科室筛选，可重复")
	f.StringArrayVar(&physicians, "physician", nil, "医生筛选，可重复")
	f.StringArrayVar(&types, "type", nil, "类型筛选 (Consultation / Medicine / Procedure / Supply)，可重复")
}

func loadConfig() {
	c, info, err := config.LoadConfigWithInfo(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败，使用默认配置: %v\n", err)
		c = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}
	cfg = c
	cfgInfo = info

	if dataSource != "" {
		cfg.Data.Source = dataSource
	}
}

// currentSelection 命令行筛选条件
func currentSelection() model.Selection {
	return model.Selection{
		Departments: departments,
		Physicians:  physicians,
		Types:       types,
	}
}

// loadDataset 按配置加载数据源
func loadDataset() (*store.Dataset, error) {
	path := config.ResolveSource(cfg)
	if path == "" {
		return nil, fmt.Errorf("未配置数据源，请使用 --data 或 config.toml [data] source")
	}
	return loader.Load(path, loader.Options{
		Sheet: cfg.Data.Sheet,
		Table: cfg.Data.Table,
	})
}
