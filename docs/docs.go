// Package docs registers the swagger document served at /swagger/.
// Maintained by hand; keep it in sync with the handler annotations.
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
        "/api/login": {
            "post": {
                "description": "Verifies credentials against the configured admin account and returns a bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Admin login",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Malformed request"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/user-results": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Without a code, returns all results. With ?code=, returns the single matching record.",
                "produces": ["application/json"],
                "tags": ["Results"],
                "summary": "List evaluation results",
                "parameters": [
                    {"type": "string", "name": "code", "in": "query", "description": "Result code"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown code"}
                }
            }
        },
        "/api/create-result": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a pending record with a generated code and broadcasts a newResult event.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Results"],
                "summary": "Create a result",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Malformed request"}
                }
            }
        },
        "/api/update-result-status": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Applies a forward-only status transition and broadcasts a resultUpdate event.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Results"],
                "summary": "Update result status",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Malformed request"},
                    "404": {"description": "Unknown code"},
                    "409": {"description": "Transition does not advance the lifecycle"}
                }
            }
        },
        "/api/delete-result": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Hard-deletes the record. No live event is broadcast; the caller re-fetches on success.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Results"],
                "summary": "Delete a result",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown code"}
                }
            }
        },
        "/api/preview-pdf": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Composes the PDF restricted to the selected sections. Omitted section flags default to on.",
                "produces": ["application/pdf"],
                "tags": ["Reports"],
                "summary": "Preview a report PDF",
                "parameters": [
                    {"type": "string", "name": "code", "in": "query", "required": true},
                    {"type": "boolean", "name": "generalEvaluation", "in": "query"},
                    {"type": "boolean", "name": "strengths", "in": "query"},
                    {"type": "boolean", "name": "interviewQuestions", "in": "query"},
                    {"type": "boolean", "name": "whyTheseQuestions", "in": "query"},
                    {"type": "boolean", "name": "developmentSuggestions", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Result not completed or missing code"},
                    "404": {"description": "Unknown code"},
                    "500": {"description": "Generation failure, cause included"}
                }
            }
        },
        "/api/evaluation/generatePDF": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Composes the PDF, then resolves candidate metadata to name the file {name}_{ddMMyyyy}.pdf.",
                "consumes": ["application/json"],
                "produces": ["application/pdf"],
                "tags": ["Reports"],
                "summary": "Generate a report PDF for download",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Result not completed or malformed request"},
                    "404": {"description": "Unknown code"},
                    "500": {"description": "Generation failure, cause included"}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Database unreachable"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TalentPlay Results API",
	Description:      "Evaluation result tracking and report generation for the TalentPlay assessment platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
