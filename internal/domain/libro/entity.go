package libro

// Libro 图书实体(聚合根)
// 设计说明:
// 1. ID由存储层分配(自增),创建后不可变
// 2. 其余字段在创建时确定,当前流程不会修改
// 3. JSON字段名与前端约定一致(camelCase),列表缓存也直接序列化该结构
type Libro struct {
	ID               uint   `json:"id"`
	Titulo           string `json:"titulo"`
	Autor            string `json:"autor"`
	Descripcion      string `json:"descripcion"`
	Genero           string `json:"genero"`
	FechaPublicacion Date   `json:"fechaPublicacion"`
}

// NewLibro 创建新图书(工厂方法)
// 调用方需先完成输入校验,ID留空由仓储回填
func NewLibro(titulo, autor, descripcion, genero string, fechaPublicacion Date) *Libro {
	return &Libro{
		Titulo:           titulo,
		Autor:            autor,
		Descripcion:      descripcion,
		Genero:           genero,
		FechaPublicacion: fechaPublicacion,
	}
}

// Generos 前端提供的体裁选项
// genero字段本身不限定取值(只限制长度),这里用于种子数据和文档
var Generos = []string{
	"Ficción",
	"No Ficción",
	"Ciencia Ficción",
	"Fantasía",
	"Horror",
	"Misterio",
	"Romance",
	"Thriller",
	"Biografía",
	"Historia",
	"Tecnología",
	"Otro",
}
