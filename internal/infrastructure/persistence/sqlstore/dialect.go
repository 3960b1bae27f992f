package sqlstore

// dialect 各数据库的区分大小写匹配条件
// LIKE在mysql默认排序规则下不区分大小写,这里统一改用子串位置函数和二进制比较
type dialect struct {
	titleContains string
	generoEquals  string
}

func dialectFor(name string) dialect {
	switch name {
	case "mysql":
		return dialect{
			titleContains: "INSTR(CAST(titulo AS BINARY), CAST(? AS BINARY)) > 0",
			generoEquals:  "CAST(genero AS BINARY) = CAST(? AS BINARY)",
		}
	case "postgres":
		return dialect{
			titleContains: "strpos(titulo, ?) > 0",
			generoEquals:  "genero = ?",
		}
	default:
		// sqlite的instr和=默认按字节比较
		return dialect{
			titleContains: "instr(titulo, ?) > 0",
			generoEquals:  "genero = ?",
		}
	}
}
