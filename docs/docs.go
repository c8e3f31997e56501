// Package docs Parking Dashboard API.
//
// Дашборд общественных парковок Тэгу: пригодность для солнечных панелей и
// почасовая загруженность по дням недели.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lots"],
                "summary": "Значения селекторов боковой панели",
                "parameters": [
                    {"type": "string", "default": "전체", "description": "Район (подстрока адреса)", "name": "district", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.OptionsResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/lots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lots"],
                "summary": "Фильтрация парковок",
                "parameters": [
                    {"type": "string", "default": "전체", "description": "Район", "name": "district", "in": "query"},
                    {"type": "string", "default": "전체", "description": "Название парковки", "name": "lot", "in": "query"},
                    {"type": "string", "description": "ID парковки (однозначный выбор)", "name": "lot_id", "in": "query"},
                    {"enum": ["전체", "적합", "부적합"], "type": "string", "description": "Пригодность", "name": "solar", "in": "query"},
                    {"enum": ["전체", "여유", "보통", "혼잡"], "type": "string", "description": "Загруженность", "name": "congestion", "in": "query"},
                    {"enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"], "type": "string", "default": "Monday", "description": "День недели", "name": "weekday", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.FilterResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/lots/{id}/congestion/{weekday}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Congestion"],
                "summary": "Ряд загруженности парковки",
                "parameters": [
                    {"type": "string", "description": "ID парковки", "name": "id", "in": "path", "required": true},
                    {"enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"], "type": "string", "description": "День недели", "name": "weekday", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.Series"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/lots/{id}/congestion/{weekday}/chart.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["Congestion"],
                "summary": "График загруженности парковки",
                "parameters": [
                    {"type": "string", "description": "ID парковки", "name": "id", "in": "path", "required": true},
                    {"enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"], "type": "string", "description": "День недели", "name": "weekday", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "Статистика набора данных",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.DatasetSummary"}}}]}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.DatasetSummary": {
            "type": "object",
            "properties": {
                "total_lots": {"type": "integer"},
                "by_district": {"type": "object", "additionalProperties": {"type": "integer"}},
                "by_solar": {"type": "object", "additionalProperties": {"type": "integer"}},
                "by_congestion": {"type": "object", "additionalProperties": {"type": "integer"}},
                "weekday_columns": {"type": "object", "additionalProperties": {"type": "integer"}},
                "lots_without_congestion": {"type": "integer"},
                "loaded_at": {"type": "string"}
            }
        },
        "domain.Selection": {
            "type": "object",
            "properties": {
                "candidates": {"type": "integer"},
                "ambiguous": {"type": "boolean"}
            }
        },
        "domain.Series": {
            "type": "object",
            "properties": {
                "lot_id": {"type": "string"},
                "weekday": {"type": "string"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/domain.SeriesPoint"}}
            }
        },
        "domain.SeriesPoint": {
            "type": "object",
            "properties": {
                "time": {"type": "string"},
                "value": {"type": "number"}
            }
        },
        "dto.FilterRequest": {
            "type": "object",
            "properties": {
                "district": {"type": "string"},
                "lot": {"type": "string"},
                "lot_id": {"type": "string"},
                "solar": {"type": "string"},
                "congestion": {"type": "string"},
                "weekday": {"type": "string"}
            }
        },
        "dto.FilterResponse": {
            "type": "object",
            "properties": {
                "filter": {"$ref": "#/definitions/dto.FilterRequest"},
                "lots": {"type": "array", "items": {"$ref": "#/definitions/dto.LotDTO"}},
                "total": {"type": "integer"},
                "selected": {"$ref": "#/definitions/dto.LotDTO"},
                "selection": {"$ref": "#/definitions/domain.Selection"},
                "weekday": {"type": "string"},
                "series": {"$ref": "#/definitions/domain.Series"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/dto.Message"}}
            }
        },
        "dto.LotDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "solar": {"type": "string"},
                "congestion": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "dto.Message": {
            "type": "object",
            "properties": {
                "level": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "dto.OptionsResponse": {
            "type": "object",
            "properties": {
                "districts": {"type": "array", "items": {"type": "string"}},
                "lots": {"type": "array", "items": {"type": "string"}},
                "solar": {"type": "array", "items": {"type": "string"}},
                "congestion": {"type": "array", "items": {"type": "string"}},
                "weekdays": {"type": "array", "items": {"type": "string"}}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "messages": {"type": "array", "items": {"type": "string"}},
                "time_ms": {"type": "number"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Parking Dashboard API",
	Description:      "Общественные парковки Тэгу: фильтры по району, пригодности для солнечных панелей и загруженности, почасовые ряды загруженности по дням недели.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
