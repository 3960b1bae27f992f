package dto

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
)

// 字段错误信息: json字段名 → 校验规则 → 提示
var fieldMessages = map[string]map[string]string{
	"titulo": {
		"notblank": "El título es requerido",
		"utf16max": "El título no puede exceder los 200 caracteres",
	},
	"autor": {
		"notblank": "El autor es requerido",
		"utf16max": "El autor no puede exceder los 200 caracteres",
	},
	"descripcion": {
		"notblank": "La descripción es requerida",
	},
	"genero": {
		"utf16max": "El género no puede exceder los 100 caracteres",
	},
	"fechaPublicacion": {
		"required":  "La fecha de publicación es requerida",
		"notfuture": "La fecha de publicación no puede ser futura",
	},
	"pageNumber": {
		"int": "El número de página debe ser un número entero",
	},
	"pageSize": {
		"int": "El tamaño de página debe ser un número entero",
	},
}

// RegisterValidators 向gin的validator注册自定义规则
// now用于判断"今天",测试时传入固定时钟
func RegisterValidators(now func() time.Time) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator引擎不是validator.Validate")
	}

	// 错误中的字段名使用json名(titulo而不是Titulo)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// libro.Date按"YYYY-MM-DD"字符串参与校验,零值视为空
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(libro.Date)
		if !ok || d.IsZero() {
			return ""
		}
		return d.String()
	}, libro.Date{})

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("utf16max", utf16Max); err != nil {
		return err
	}
	return v.RegisterValidation("notfuture", notFuture(now))
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// utf16Max 字符串的UTF-16码元数不超过参数值
func utf16Max(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("utf16max参数无效: %q", fl.Param()))
	}
	return UTF16Len(fl.Field().String()) <= limit
}

// UTF16Len 字符串按UTF-16编码后的码元数
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// notFuture 日期不晚于now所在时区的今天
func notFuture(now func() time.Time) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		d, err := libro.ParseDate(s)
		if err != nil {
			return false
		}
		return !d.After(libro.DateOf(now()))
	}
}

// FieldErrors 把validator错误转换为 字段名 → 错误信息列表
// 不是校验错误时返回false
func FieldErrors(err error) (map[string][]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		out[field] = append(out[field], messageFor(field, fe.Tag()))
	}
	return out, true
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	return fmt.Sprintf("El campo %s no es válido", field)
}

// QueryErrors 查询参数绑定失败时,找出不是整数的分页参数
// gin的form绑定错误不带字段名,这里按参数逐个检查
func QueryErrors(values url.Values) map[string][]string {
	out := map[string][]string{}
	for _, field := range []string{"pageNumber", "pageSize"} {
		v := values.Get(field)
		if v == "" {
			continue
		}
		if _, err := strconv.Atoi(v); err != nil {
			out[field] = append(out[field], messageFor(field, "int"))
		}
	}
	return out
}
