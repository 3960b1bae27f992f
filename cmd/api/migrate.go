package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/sqlstore"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "创建或更新libros表",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 迁移只在这里显式执行一次
			dbCfg := cfg.Database
			dbCfg.AutoMigrate = false

			db, cleanup, err := openDB(dbCfg, cfg.Server.Mode, log)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sqlstore.Migrate(db); err != nil {
				return err
			}
			ok("迁移完成（%s）", cfg.Database.Driver)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "表为空时写入示例图书",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDB(cfg.Database, cfg.Server.Mode, log)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := sqlstore.Seed(cmd.Context(), db, sqlstore.SampleLibros())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("表中已有数据，跳过")
				return nil
			}
			ok("已写入 %d 本示例图书", n)
			return nil
		},
	}
}
