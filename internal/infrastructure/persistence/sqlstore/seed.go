package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
)

// SampleLibros 示例数据(seed命令使用)
func SampleLibros() []*libro.Libro {
	return []*libro.Libro{
		libro.NewLibro("Cien años de soledad", "Gabriel García Márquez",
			"La historia de la familia Buendía a lo largo de siete generaciones en Macondo.",
			"Ficción", libro.MustParseDate("1967-05-30")),
		libro.NewLibro("El Aleph", "Jorge Luis Borges",
			"Colección de cuentos sobre el infinito, los laberintos y la identidad.",
			"Ficción", libro.MustParseDate("1949-06-01")),
		libro.NewLibro("Fundación", "Isaac Asimov",
			"Hari Seldon prevé la caída del Imperio Galáctico y crea la Fundación.",
			"Ciencia Ficción", libro.MustParseDate("1951-06-01")),
		libro.NewLibro("It", "Stephen King",
			"Un grupo de niños de Derry se enfrenta a una entidad que adopta la forma de un payaso.",
			"Horror", libro.MustParseDate("1986-09-15")),
		libro.NewLibro("El nombre del viento", "Patrick Rothfuss",
			"Kvothe narra su vida, desde su infancia en una troupe hasta la Universidad.",
			"Fantasía", libro.MustParseDate("2007-03-27")),
		libro.NewLibro("Sapiens", "Yuval Noah Harari",
			"Una breve historia de la humanidad desde la Edad de Piedra.",
			"Historia", libro.MustParseDate("2011-01-01")),
	}
}

// Seed 在表为空时事务性地插入示例数据，返回插入条数
func Seed(ctx context.Context, db *gorm.DB, libros []*libro.Libro) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&LibroModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计图书数量失败: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	repo := NewLibroRepository(db)
	err := NewTxManager(db).Transaction(ctx, func(ctx context.Context) error {
		for _, l := range libros {
			if err := repo.Create(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(libros), nil
}
