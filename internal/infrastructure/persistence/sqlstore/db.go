package sqlstore

import (
	"database/sql/driver"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，支持mysql、postgres、sqlite三种驱动
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. debug模式开启SQL日志，其余模式关闭
// 4. auto_migrate开启时自动迁移表结构
func NewDB(cfg config.DatabaseConfig, mode string, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("driver", cfg.Driver))

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// Migrate 迁移表结构
// AutoMigrate只会创建表、添加字段和索引，不会删除或修改现有字段
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&LibroModel{})
}

// LibroModel GORM图书模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/libro/entity.go是领域实体，不依赖GORM
// 3. 没有软删除，Delete是物理删除
type LibroModel struct {
	ID               uint    `gorm:"primaryKey"`
	Titulo           string  `gorm:"size:200;not null;comment:书名"`
	Autor            string  `gorm:"size:200;not null;comment:作者"`
	Descripcion      string  `gorm:"type:text;not null;comment:简介"`
	Genero           string  `gorm:"size:100;index;comment:体裁"`
	FechaPublicacion sqlDate `gorm:"type:date;not null;comment:出版日期"`
}

// TableName 指定表名
func (LibroModel) TableName() string {
	return "libros"
}

func toModel(l *libro.Libro) *LibroModel {
	return &LibroModel{
		ID:               l.ID,
		Titulo:           l.Titulo,
		Autor:            l.Autor,
		Descripcion:      l.Descripcion,
		Genero:           l.Genero,
		FechaPublicacion: sqlDate(l.FechaPublicacion),
	}
}

func toEntity(m *LibroModel) *libro.Libro {
	return &libro.Libro{
		ID:               m.ID,
		Titulo:           m.Titulo,
		Autor:            m.Autor,
		Descripcion:      m.Descripcion,
		Genero:           m.Genero,
		FechaPublicacion: libro.Date(m.FechaPublicacion),
	}
}

// sqlDate date列的读写
// 以"YYYY-MM-DD"文本写入，不经过time.Time，避免驱动按连接时区换算后日期偏移一天
type sqlDate libro.Date

// Value 实现driver.Valuer
func (d sqlDate) Value() (driver.Value, error) {
	return libro.Date(d).String(), nil
}

// Scan 实现sql.Scanner
// mysql(parseTime=true)、postgres、sqlite驱动读出的都是time.Time，也兼容文本
func (d *sqlDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = sqlDate(libro.DateOf(v))
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		*d = sqlDate{}
		return nil
	default:
		return fmt.Errorf("无法将%T转换为日期", src)
	}
}

func (d *sqlDate) parse(s string) error {
	if len(s) > len(libro.DateLayout) {
		s = s[:len(libro.DateLayout)]
	}
	parsed, err := libro.ParseDate(s)
	if err != nil {
		return err
	}
	*d = sqlDate(parsed)
	return nil
}
