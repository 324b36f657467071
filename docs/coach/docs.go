// Package coach registers the OpenAPI document of the coaching response service.
package coach

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
        "/generate": {
            "post": {
                "description": "Accepts the legacy quoted wire string \"<context> (<sentiment>).\" or a JSON object {context, sentiment}",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Coach"],
                "summary": "Generate coaching reply",
                "parameters": [
                    {"description": "Structured request (the legacy quoted string is also accepted)", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/coach.GenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/coach.GenerateResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "429": {"description": "Model quota exceeded", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "504": {"description": "Upstream timeout", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/replies": {
            "get": {
                "description": "Newest first; requires the history database",
                "produces": ["application/json"],
                "tags": ["Coach"],
                "summary": "List coaching replies",
                "parameters": [
                    {"type": "integer", "description": "Max items (default 20, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.ListResponse"}},
                    "400": {"description": "Invalid limit", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "501": {"description": "History not enabled", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "coach.GenerateRequest": {
            "type": "object",
            "required": ["context"],
            "properties": {
                "context": {"type": "string", "maxLength": 20000},
                "sentiment": {"type": "string", "maxLength": 32}
            }
        },
        "coach.GenerateResponse": {
            "type": "object",
            "properties": {
                "html": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "info": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "common.ListResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Coaching Response API",
	Description:      "Turns a transcript and its detected sentiment into short communication coaching",
	InfoInstanceName: "coach",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
