// Package docs registers the Swagger document served at /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/orders": {
            "post": {
                "summary": "Place a new order",
                "tags": ["orders"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/orders/cancel-requests": {
            "get": {
                "summary": "List orders awaiting cancellation review",
                "tags": ["orders"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/orders/{orderId}": {
            "get": {
                "summary": "Get one order with items and status history",
                "tags": ["orders"],
                "parameters": [{"type": "string", "name": "orderId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/orders/{orderId}/cancel": {
            "post": {
                "summary": "Customer cancellation request",
                "tags": ["orders"],
                "parameters": [{"type": "string", "name": "orderId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/orders/{orderId}/cancel-review": {
            "post": {
                "summary": "Admin resolution of a cancellation request",
                "tags": ["orders"],
                "parameters": [{"type": "string", "name": "orderId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/orders/{orderId}/status": {
            "post": {
                "summary": "Move an order to a new status",
                "tags": ["orders"],
                "parameters": [{"type": "string", "name": "orderId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Shop Order Service",
	Description:      "Customer purchase order lifecycle API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
