package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"swan/internal/server"
	"swan/internal/util"
)

var (
	servePort int
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动看板服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("==========================================")
		fmt.Println("  Swan - 服务访问量分析看板")
		fmt.Println("==========================================")

		// 命令行参数覆盖配置
		if servePort > 0 && !cfgInfo.PortSpecified {
			cfg.Server.Port = servePort
		}
		if serveDev {
			cfg.Server.DevMode = true
		}

		ds, err := loadDataset()
		if err != nil {
			log.Fatalf("加载数据失败: %v", err)
		}
		fmt.Printf("数据源: %s (%s, %d 行)\n", ds.Source, ds.Format, ds.Count())

		renderer, err := newRenderer()
		if err != nil {
			log.Printf("加载图表字体失败，使用内置字体: %v", err)
			renderer, err = newDefaultRenderer()
			if err != nil {
				return err
			}
		}

		srv := server.NewServer(cfg, ds, renderer)

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

		go func() {
			fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
			if err := srv.Run(addr); err != nil {
				log.Fatalf("服务启动失败: %v", err)
			}
		}()

		// 打开浏览器
		if !cfg.Server.DevMode {
			fmt.Printf("正在打开浏览器: %s\n", url)
			if err := util.OpenBrowserWithFallback(url); err != nil {
				fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
			}
		} else {
			fmt.Printf("开发模式: 请访问 %s\n", url)
		}

		fmt.Println("\n按 Ctrl+C 停止服务...")

		// 等待信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		fmt.Println("\n正在关闭服务...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("关闭服务失败: %v", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "开发模式")
	rootCmd.AddCommand(serveCmd)
}
