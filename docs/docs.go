// Package docs registra a documentação OpenAPI servida em /swagger.
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
        "/": {
            "get": {
                "produces": ["application/json", "text/html"],
                "tags": ["works"],
                "summary": "Destaques",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ShelfResponse"}}
                    }
                }
            }
        },
        "/works": {
            "get": {
                "description": "Lista obras ordenadas por votos; sem filtro agrupa por categoria",
                "produces": ["application/json", "text/html"],
                "tags": ["works"],
                "summary": "Lista obras",
                "parameters": [
                    {"type": "string", "description": "album, book ou movie (singular ou plural)", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ShelfResponse"}}
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json", "text/html"],
                "tags": ["works"],
                "summary": "Cria obra",
                "parameters": [
                    {"description": "Dados da obra", "name": "work", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateWorkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.WorkResponse"}},
                    "302": {"description": "Found"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/works/{id}": {
            "get": {
                "produces": ["application/json", "text/html"],
                "tags": ["works"],
                "summary": "Busca obra",
                "parameters": [
                    {"type": "string", "description": "ID da obra", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WorkResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json", "text/html"],
                "tags": ["works"],
                "summary": "Exclui obra",
                "parameters": [
                    {"type": "string", "description": "ID da obra", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json", "text/html"],
                "tags": ["works"],
                "summary": "Altera obra",
                "parameters": [
                    {"type": "string", "description": "ID da obra", "name": "id", "in": "path", "required": true},
                    {"description": "Campos alterados", "name": "work", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateWorkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WorkResponse"}},
                    "302": {"description": "Found"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/works/{id}/upvote": {
            "post": {
                "produces": ["application/json", "text/html"],
                "tags": ["votes"],
                "summary": "Vota numa obra",
                "parameters": [
                    {"type": "string", "description": "ID da obra", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/{provider}": {
            "get": {
                "tags": ["auth"],
                "summary": "Inicia login OAuth",
                "parameters": [
                    {"type": "string", "description": "github ou google", "name": "provider", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/{provider}/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "Retorno do login OAuth",
                "parameters": [
                    {"type": "string", "description": "github ou google", "name": "provider", "in": "path", "required": true},
                    {"type": "string", "description": "Código de autorização", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "State emitido no login", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Encerra a sessão",
                "responses": {
                    "302": {"description": "Found"}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateWorkRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.UpdateWorkRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.WorkResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "owner_id": {"type": "string"},
                "title": {"type": "string"},
                "vote_count": {"type": "integer"}
            }
        },
        "dto.ShelfResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "works": {"type": "array", "items": {"$ref": "#/definitions/dto.WorkResponse"}}
            }
        },
        "dto.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/dto.ValidationError"}}
            }
        }
    }
}`

// SwaggerInfo contém as informações exportadas da especificação
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Media Ranker",
	Description:      "Ranking de álbuns, livros e filmes com login OAuth e votos únicos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
