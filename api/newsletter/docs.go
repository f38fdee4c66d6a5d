// Package newsletter registers the OpenAPI definition served at /swagger/.
// Regenerate with: swag init -g internal/newsletter/http/router.go -o api/newsletter
package newsletter

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Paperwing Team",
            "url": "https://github.com/paperwing/newsletter"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/subscriptions": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Subscriptions"],
                "summary": "Register a newsletter subscriber",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true, "description": "Subscriber display name"},
                    {"type": "string", "name": "email", "in": "formData", "required": true, "description": "Subscriber email address"}
                ],
                "responses": {
                    "200": {"description": "Subscriber registered, confirmation email sent"},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Unexpected failure", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/subscriptions/confirm": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Subscriptions"],
                "summary": "Confirm a pending subscription",
                "parameters": [
                    {"type": "string", "name": "subscription_token", "in": "query", "required": true, "description": "Opaque confirmation token from the welcome email"}
                ],
                "responses": {
                    "200": {"description": "Subscription confirmed"},
                    "400": {"description": "Missing token", "schema": {"$ref": "#/definitions/APIError"}},
                    "401": {"description": "Unknown token", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Unexpected failure", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/newsletters": {
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Newsletters"],
                "summary": "Publish a newsletter issue",
                "parameters": [
                    {"name": "issue", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PublishRequest"}}
                ],
                "responses": {
                    "200": {"description": "Issue delivered to all confirmed subscribers"},
                    "400": {"description": "Malformed or invalid body", "schema": {"$ref": "#/definitions/APIError"}},
                    "401": {"description": "Authentication failed", "schema": {"$ref": "#/definitions/APIError"}},
                    "500": {"description": "Unexpected failure", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Admin"],
                "summary": "Operator login",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirects to /admin/dashboard with session cookie set"},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Admin dashboard",
                "responses": {
                    "200": {"description": "Logged-in operator identity"},
                    "401": {"description": "Authentication required", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/admin/password": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Admin"],
                "summary": "Change operator password",
                "parameters": [
                    {"type": "string", "name": "current_password", "in": "formData", "required": true},
                    {"type": "string", "name": "new_password", "in": "formData", "required": true},
                    {"type": "string", "name": "new_password_check", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Password changed"},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/APIError"}},
                    "401": {"description": "Current password wrong", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/health_check": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {"200": {"description": "Service is alive"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks"},
                    "503": {"description": "service not ready"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "PublishRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {
                    "type": "object",
                    "properties": {
                        "html": {"type": "string"},
                        "text": {"type": "string"}
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"},
        "SessionCookie": {"type": "apiKey", "name": "newsletter_session", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Newsletter Delivery Service API",
	Description:      "Double-opt-in newsletter subscriptions with operator-published issue fan-out.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
