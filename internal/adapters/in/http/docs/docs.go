// Package docs holds the Swagger document of the HTTP API. It is kept in
// sync with the route annotations in the http package.
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
        "/api/shopify/order": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Process a Shopify order webhook",
                "parameters": [
                    {
                        "type": "string",
                        "description": "base64 HMAC-SHA256 of the body",
                        "name": "X-Shopify-Hmac-Sha256",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.WebhookResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.WebhookResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.WebhookResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.WebhookResponse"}}
                }
            }
        },
        "/api/v1/orders/{orderId}/artifacts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["operator"],
                "summary": "List documents and claim of an order",
                "parameters": [
                    {"type": "integer", "description": "Shopify order id", "name": "orderId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/queries.GetOrderArtifactsQueryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/locks/{orderId}": {
            "delete": {
                "tags": ["operator"],
                "summary": "Release the claim of an order",
                "parameters": [
                    {"type": "integer", "description": "Shopify order id", "name": "orderId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/geocode": {
            "get": {
                "produces": ["application/json"],
                "tags": ["preview"],
                "summary": "Geocode a location",
                "parameters": [
                    {"type": "string", "description": "free-text location, defaults to Amsterdam", "name": "location", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.GeocodeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/starmap": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["image/svg+xml"],
                "tags": ["preview"],
                "summary": "Render a star chart",
                "parameters": [
                    {"description": "chart parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.StarmapRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/pdf/preview": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["preview"],
                "summary": "Render a sample poster",
                "parameters": [
                    {"type": "string", "description": "Taupe, White or Black", "name": "color", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/artifacts/{key}": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["orders"],
                "summary": "Download a stored document",
                "parameters": [
                    {"type": "string", "description": "object key below orders/", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["operator"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "http.Error": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "code": {"type": "integer"},
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "http.OrderSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "location": {"type": "string"},
                "coordinates": {"type": "string"}
            }
        },
        "http.WebhookResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "order": {"$ref": "#/definitions/http.OrderSummary"},
                "pdfSize": {"type": "string"},
                "pdfBytes": {"type": "integer"},
                "pdfUrl": {"type": "string"},
                "status": {"type": "string"},
                "error": {"type": "string"},
                "category": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "http.GeocodeResponse": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "place": {"type": "string"},
                "city": {"type": "string"},
                "coordinates": {"type": "string"}
            }
        },
        "http.StarmapRequest": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "date": {"type": "string", "example": "04.07.2025"},
                "time": {"type": "string", "example": "21.55.00"},
                "utcOffset": {"type": "integer"},
                "constellation": {"type": "boolean"}
            }
        },
        "queries.DocumentView": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "url": {"type": "string"},
                "sizeBytes": {"type": "integer"},
                "size": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "queries.ClaimView": {
            "type": "object",
            "properties": {
                "owner": {"type": "string"},
                "claimedAt": {"type": "string"},
                "expiresAt": {"type": "string"},
                "expired": {"type": "boolean"}
            }
        },
        "queries.GetOrderArtifactsQueryResponse": {
            "type": "object",
            "properties": {
                "orderId": {"type": "integer"},
                "completed": {"type": "boolean"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/queries.DocumentView"}},
                "claim": {"$ref": "#/definitions/queries.ClaimView"}
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
	Title:            "Star map fulfillment API",
	Description:      "Turns paid star map poster orders into print-ready PDFs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
