// libraryapi 图书目录服务
//
// @title        Libro API
// @version      1.0
// @description  图书目录服务：分页查询（带缓存）与新增图书
// @host         localhost:5057
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/xiebiao/libraryapi/docs"
	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
	"github.com/xiebiao/libraryapi/pkg/logger"
)

var (
	flagConfig string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "libraryapi",
	Short: "图书目录服务（Libro API）",
	Long: `图书目录REST服务。

不带子命令时等同于 serve。
配置读取顺序：默认值 → config/config.yaml（或 --config）→ .env → LIBRARY_ 前缀的环境变量`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "配置文件路径（默认 ./config/config.yaml）")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// .env只补充未设置的环境变量
		_ = godotenv.Load(".env")
		_ = godotenv.Load(".env.local")

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		log, err = logger.New(logger.Options{
			Level:        cfg.Log.Level,
			Format:       cfg.Log.Format,
			Output:       cfg.Log.Output,
			EnableCaller: cfg.Log.EnableCaller,
		})
		if err != nil {
			return fmt.Errorf("初始化日志失败: %w", err)
		}
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newEventsCmd(),
	)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// ok 绿色成功提示
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// info 启动信息
func info(label, value string) {
	fmt.Printf("  - %s: %s\n", label, color.CyanString(value))
}
