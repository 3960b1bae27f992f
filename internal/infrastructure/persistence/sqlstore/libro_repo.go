package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// libroRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/libro/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误统一包装为内部错误,不存在的记录转换为ErrLibroNotFound
type libroRepository struct {
	db      *gorm.DB
	dialect dialect
}

// NewLibroRepository 创建图书仓储
func NewLibroRepository(db *gorm.DB) libro.Repository {
	return &libroRepository{
		db:      db,
		dialect: dialectFor(db.Dialector.Name()),
	}
}

// Create 插入图书并回填自增ID
func (r *libroRepository) Create(ctx context.Context, l *libro.Libro) error {
	model := toModel(l)
	model.ID = 0

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	l.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *libroRepository) FindByID(ctx context.Context, id uint) (*libro.Libro, error) {
	var model LibroModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, libro.ErrLibroNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toEntity(&model), nil
}

// Update 按ID更新全部字段
func (r *libroRepository) Update(ctx context.Context, l *libro.Libro) error {
	db := getDB(ctx, r.db)
	model := toModel(l)

	// Select("*")让零值字段(如空genero)也参与更新
	result := db.Model(&LibroModel{ID: l.ID}).Select("*").Omit("id").Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书失败")
	}

	// mysql在值未变化时RowsAffected为0,需要再确认记录是否存在
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&LibroModel{}).Where("id = ?", l.ID).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "更新图书失败")
		}
		if count == 0 {
			return libro.ErrLibroNotFound
		}
	}

	return nil
}

// Delete 物理删除,记录不存在时不报错
func (r *libroRepository) Delete(ctx context.Context, id uint) error {
	if err := getDB(ctx, r.db).Delete(&LibroModel{}, id).Error; err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}
	return nil
}

// List 分页查询图书列表
// 1. 标题子串匹配区分大小写,体裁精确匹配
// 2. 先查总数,再按ID降序取当前页
func (r *libroRepository) List(ctx context.Context, params libro.ListParams) ([]*libro.Libro, int64, error) {
	var models []LibroModel
	var total int64

	// 总数和分页各用一条独立的查询链
	filtered := func() *gorm.DB {
		query := getDB(ctx, r.db).Model(&LibroModel{})
		if params.SearchTerm != "" {
			query = query.Where(r.dialect.titleContains, params.SearchTerm)
		}
		if params.Genero != "" {
			query = query.Where(r.dialect.generoEquals, params.Genero)
		}
		return query
	}

	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 页码超出数据范围(含偏移量溢出)时不再查询当前页
	if params.OffsetOverflows() || int64(params.Offset()) >= total {
		return []*libro.Libro{}, total, nil
	}

	err := filtered().
		Order("id DESC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	libros := make([]*libro.Libro, len(models))
	for i := range models {
		libros[i] = toEntity(&models[i])
	}

	return libros, total, nil
}
