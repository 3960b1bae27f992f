// Package docs Swagger文档（由 swag init -g cmd/api/main.go 生成）
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/Libros": {
            "get": {
                "description": "分页查询图书，按ID倒序；searchTerm按标题子串匹配（区分大小写），genero精确匹配。结果缓存5分钟",
                "produces": ["application/json"],
                "tags": ["Libros"],
                "summary": "图书列表",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "页码，<1按1处理", "name": "pageNumber", "in": "query"},
                    {"type": "integer", "default": 10, "description": "每页数量，1~100", "name": "pageSize", "in": "query"},
                    {"type": "string", "description": "标题关键词", "name": "searchTerm", "in": "query"},
                    {"type": "string", "description": "体裁", "name": "genero", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageResponse"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "服务器错误", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "post": {
                "description": "新增一条图书记录。不会清理列表缓存",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Libros"],
                "summary": "新增图书",
                "parameters": [
                    {"description": "图书信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateLibroRequest"}}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/dto.LibroResponse"},
                        "headers": {"Location": {"type": "string", "description": "/api/Libros/{id}"}}
                    },
                    "400": {"description": "校验失败", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "服务器错误", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/Libros/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Libros"],
                "summary": "图书详情",
                "parameters": [
                    {"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LibroResponse"}},
                    "400": {"description": "ID格式错误", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateLibroRequest": {
            "type": "object",
            "properties": {
                "autor": {"type": "string", "example": "Gabriel García Márquez"},
                "descripcion": {"type": "string", "example": "La historia de la familia Buendía"},
                "fechaPublicacion": {"type": "string", "format": "date", "example": "1967-05-30"},
                "genero": {"type": "string", "example": "Ficción"},
                "titulo": {"type": "string", "example": "Cien años de soledad"}
            }
        },
        "dto.LibroResponse": {
            "type": "object",
            "properties": {
                "autor": {"type": "string", "example": "Gabriel García Márquez"},
                "descripcion": {"type": "string", "example": "La historia de la familia Buendía"},
                "fechaPublicacion": {"type": "string", "example": "1967-05-30"},
                "genero": {"type": "string", "example": "Ficción"},
                "id": {"type": "integer", "example": 1},
                "titulo": {"type": "string", "example": "Cien años de soledad"}
            }
        },
        "dto.PageResponse": {
            "type": "object",
            "properties": {
                "hasNextPage": {"type": "boolean", "example": true},
                "hasPreviousPage": {"type": "boolean", "example": false},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.LibroResponse"}},
                "pageNumber": {"type": "integer", "example": 1},
                "pageSize": {"type": "integer", "example": 10},
                "totalCount": {"type": "integer", "example": 42},
                "totalPages": {"type": "integer", "example": 5}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "detail": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "message": {"type": "string"},
                "stackTrace": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5057",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Libro API",
	Description:      "图书目录服务：分页查询（带缓存）与新增图书",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
