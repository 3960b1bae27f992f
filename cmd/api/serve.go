package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/libraryapi/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe 启动服务并在收到SIGINT/SIGTERM后优雅退出
func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdownTracer(sctx); err != nil {
				log.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	app, cleanup, err := InitializeApp(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	printBanner()

	if app.Limiter != nil {
		go app.Limiter.Run(ctx.Done())
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP服务启动", zap.String("addr", app.Server.Addr), zap.String("mode", cfg.Server.Mode))
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("正在关闭服务...")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(sctx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}
	log.Info("服务已关闭")
	return nil
}

func printBanner() {
	addr := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	ok("配置加载成功")
	info("运行模式", cfg.Server.Mode)
	info("数据库", cfg.Database.Driver)
	info("列表缓存", fmt.Sprintf("%s (ttl %s)", cfg.Cache.Driver, cfg.Cache.TTL))
	if cfg.MQ.Enabled {
		info("事件", cfg.MQ.Exchange)
	}

	fmt.Println()
	ok("服务启动成功")
	info("图书列表", "GET "+addr+"/api/Libros")
	info("新增图书", "POST "+addr+"/api/Libros")
	info("健康检查", addr+"/ping")
	info("监控指标", addr+"/metrics")
	if !cfg.Server.IsRelease() {
		info("API文档", addr+"/swagger/index.html")
	}
	fmt.Println("\n按Ctrl+C停止服务")
}
