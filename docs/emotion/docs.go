// Package emotion registers the OpenAPI document of the emotion inference service.
package emotion

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
        "/predict": {
            "post": {
                "description": "Normalizes the uploaded recording, describes voice and face, classifies the sentiment and transcribes speech",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Emotion"],
                "summary": "Predict sentiment",
                "parameters": [
                    {"type": "file", "description": "Browser-recorded audio or video", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Prediction (or {sentiment, text: \"No text found\"} when nothing was said)", "schema": {"$ref": "#/definitions/emotion.PredictResponse"}},
                    "400": {"description": "Missing or unreadable media", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "422": {"description": "Media could not be normalized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "502": {"description": "Classifier or transcription failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "504": {"description": "Upstream timeout", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/predictions": {
            "get": {
                "description": "Newest first; requires the history database",
                "produces": ["application/json"],
                "tags": ["Emotion"],
                "summary": "List predictions",
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
        },
        "emotion.PredictResponse": {
            "type": "object",
            "properties": {
                "input text": {"type": "string"},
                "sentiment": {"type": "string"},
                "transcription": {"type": "string"},
                "video_url": {"type": "string"}
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
	Title:            "Emotion Inference API",
	Description:      "Classifies the sentiment of a short recording from voice, face and speech",
	InfoInstanceName: "emotion",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
