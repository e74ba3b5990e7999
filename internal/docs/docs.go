// Package docs holds the OpenAPI document served under /swagger.
// Regenerate it with: swag init -g cmd/app/main.go -o internal/docs
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
        "/api/v1/admin/maintenance/jobs": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List maintenance jobs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DataResponse"}}
                }
            }
        },
        "/api/v1/admin/maintenance/jobs/{job}": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Run maintenance job",
                "parameters": [
                    {"type": "string", "description": "Job name", "name": "job", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MaintenanceRun"}},
                    "404": {"description": "Unknown job", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/games/{gameID}/delete": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Soft deletes a game owned by the requesting user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Delete game",
                "parameters": [
                    {"type": "string", "description": "Game ID", "name": "gameID", "in": "path", "required": true},
                    {"type": "string", "description": "Requesting user", "name": "X-User-ID", "in": "header", "required": true},
                    {"description": "Deletion reason", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handler.DeleteGameRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/softdelete.Result"}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/games/{gameID}/finalize": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Runs finalization for one game",
                "produces": ["application/json"],
                "tags": ["finalization"],
                "summary": "Finalize game",
                "parameters": [
                    {"type": "string", "description": "Game ID", "name": "gameID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/finalize.Result"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Game data incomplete", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/games/{gameID}/restore": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Restore game",
                "parameters": [
                    {"type": "string", "description": "Game ID", "name": "gameID", "in": "path", "required": true},
                    {"type": "string", "description": "Requesting user", "name": "X-User-ID", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/softdelete.Result"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/triggers/game-updated": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Finalizes a game when the update moves it into FINISHED",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["finalization"],
                "summary": "Game document changed",
                "parameters": [
                    {"description": "Before and after game documents", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.GameUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/finalize.Result"}},
                    "400": {"description": "Invalid update", "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/{userID}/league": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["league"],
                "summary": "League standing",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userID", "in": "path", "required": true},
                    {"type": "string", "description": "Season ID", "name": "season_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/league.Summary"}},
                    "404": {"description": "No participation", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Build version",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VersionInfo"}}
                }
            }
        }
    },
    "definitions": {
        "domain.GameUpdate": {"type": "object", "properties": {"before": {"type": "object"}, "after": {"type": "object"}}},
        "domain.MaintenanceRun": {"type": "object"},
        "finalize.Result": {"type": "object"},
        "league.Summary": {"type": "object"},
        "softdelete.Result": {"type": "object"},
        "handler.DataResponse": {"type": "object", "properties": {"message": {"type": "string"}, "data": {}}},
        "handler.DeleteGameRequest": {"type": "object", "properties": {"reason": {"type": "string", "maxLength": 500}}},
        "handler.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "message": {"type": "string"}}},
        "handler.ValidationErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "fields": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "handler.VersionInfo": {"type": "object", "properties": {"service": {"type": "string"}, "version": {"type": "string"}, "go_version": {"type": "string"}, "build_time": {"type": "string"}, "git_commit": {"type": "string"}}}
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Matchday API",
	Description:      "Match finalization and league progression service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
