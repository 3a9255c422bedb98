package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// FileName 默认配置文件名（位于可执行文件同目录）
const FileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server    ServerConfig    `toml:"server" mapstructure:"server"`
	Data      DataConfig      `toml:"data" mapstructure:"data"`
	Dashboard DashboardConfig `toml:"dashboard" mapstructure:"dashboard"`
	Chart     ChartConfig     `toml:"chart" mapstructure:"chart"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port" mapstructure:"port"`
	DevMode bool `toml:"dev_mode" mapstructure:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	Source  string `toml:"source" mapstructure:"source"`     // 源表路径：xlsx / csv / parquet / db
	Sheet   string `toml:"sheet" mapstructure:"sheet"`       // xlsx 工作表，空为第一个
	Table   string `toml:"table" mapstructure:"table"`       // sqlite 表名
	DataDir string `toml:"data_dir" mapstructure:"data_dir"` // 导出等临时文件目录
}

// DashboardConfig 看板配置
type DashboardConfig struct {
	Title string `toml:"title" mapstructure:"title"`
	TopN  int    `toml:"top_n" mapstructure:"top_n"`
}

// ChartConfig 图表配置
type ChartConfig struct {
	WidthInch  float64 `toml:"width_inch" mapstructure:"width_inch"`
	HeightInch float64 `toml:"height_inch" mapstructure:"height_inch"`
	FontPath   string  `toml:"font_path" mapstructure:"font_path"` // 支持阿拉伯文的 TTF，空则用内置字体
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20261,
			DevMode: false,
		},
		Data: DataConfig{
			Source:  "services.xlsx",
			Table:   "services",
			DataDir: "data",
		},
		Dashboard: DashboardConfig{
			Title: "Swan Services Analysis",
			TopN:  20,
		},
		Chart: ChartConfig{
			WidthInch:  14,
			HeightInch: 12,
		},
	}
}

func setDefaults(v *viper.Viper, c *AppConfig) {
	v.SetDefault("server.port", c.Server.Port)
	v.SetDefault("server.dev_mode", c.Server.DevMode)
	v.SetDefault("data.source", c.Data.Source)
	v.SetDefault("data.sheet", c.Data.Sheet)
	v.SetDefault("data.table", c.Data.Table)
	v.SetDefault("data.data_dir", c.Data.DataDir)
	v.SetDefault("dashboard.title", c.Dashboard.Title)
	v.SetDefault("dashboard.top_n", c.Dashboard.TopN)
	v.SetDefault("chart.width_inch", c.Chart.WidthInch)
	v.SetDefault("chart.height_inch", c.Chart.HeightInch)
	v.SetDefault("chart.font_path", c.Chart.FontPath)
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 可执行文件同目录下的 config.toml
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadConfigWithInfo 加载配置并返回元信息
// 优先级：环境变量 SWAN_* > 配置文件 > 默认值；cfgFile 为空时读取默认路径，文件不存在不报错
func LoadConfigWithInfo(cfgFile string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: cfgFile}
	explicit := cfgFile != ""
	if !explicit {
		info.Path = DefaultPath()
	}

	v := viper.New()
	v.SetEnvPrefix("SWAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	v.SetConfigFile(info.Path)
	v.SetConfigType("toml")

	data, err := os.ReadFile(info.Path)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := v.ReadInConfig(); err != nil {
			return nil, info, fmt.Errorf("read config %s: %w", info.Path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, fmt.Errorf("read config %s: %w", info.Path, err)
	}

	if _, ok := os.LookupEnv("SWAN_SERVER_PORT"); ok {
		info.PortSpecified = true
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, info, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Dashboard.TopN <= 0 {
		c.Dashboard.TopN = DefaultConfig().Dashboard.TopN
	}
	return &c, info, nil
}

// LoadConfig 加载配置
func LoadConfig(cfgFile string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(cfgFile)
	return config, err
}

// SaveConfig 保存配置到 path，path 为空时写到可执行文件同目录
func SaveConfig(config *AppConfig, path string) (string, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// EnsureDataDir 确保数据目录存在
// 相对路径以可执行文件所在目录为基准
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// ResolveSource 解析数据源路径：绝对路径原样返回，相对路径优先当前目录，其次可执行文件目录
func ResolveSource(config *AppConfig) string {
	src := config.Data.Source
	if src == "" || filepath.IsAbs(src) {
		return src
	}
	if _, err := os.Stat(src); err == nil {
		return src
	}
	if exeDir, err := GetExeDir(); err == nil {
		candidate := filepath.Join(exeDir, src)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return src
}
