// Package docs registers the OpenAPI description served under /docs.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/broker/callback": {
            "post": {
                "summary": "Apply a signed broker event",
                "tags": ["callbacks"],
                "parameters": [
                    {"name": "X-Broker-ID", "in": "header", "type": "string"},
                    {"name": "X-Signature", "in": "header", "type": "string"}
                ],
                "responses": {"200": {"description": "event applied or replayed"}, "401": {"description": "bad signature"}}
            }
        },
        "/bank/callback": {
            "post": {
                "summary": "Apply a bank transfer status update",
                "tags": ["callbacks"],
                "responses": {"200": {"description": "transfer updated"}, "404": {"description": "unknown transfer"}}
            }
        },
        "/admin/prepare/preview": {
            "get": {"summary": "Count wallets per eligibility gate", "tags": ["prepare"], "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "eligibility counts"}}}
        },
        "/admin/prepare": {
            "get": {"summary": "List prepare batches", "tags": ["prepare"], "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "batches"}}},
            "post": {"summary": "Stage a draft batch from eligible wallets", "tags": ["prepare"], "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "draft batch"}, "422": {"description": "nothing to prepare"}}}
        },
        "/admin/prepare/{id}/approve": {
            "post": {"summary": "Approve a draft batch", "tags": ["prepare"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "approved batch"}}}
        },
        "/admin/prepare/{id}/discard": {
            "post": {"summary": "Discard a batch before promotion", "tags": ["prepare"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "discarded batch"}}}
        },
        "/admin/prepare/{id}/stats": {
            "get": {"summary": "Batch totals by broker, symbol and merchant", "tags": ["prepare"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "batch stats"}}}
        },
        "/admin/prepare/{id}/orders": {
            "get": {"summary": "Page through staged lines", "tags": ["prepare"], "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "per_page", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "prepared orders"}}}
        },
        "/admin/sweep/run": {
            "post": {"summary": "Promote approved batches and notify brokers", "tags": ["sweep"], "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "sweep result"}}}
        },
        "/admin/sweep/preview": {
            "get": {"summary": "Dry run of the sweep", "tags": ["sweep"], "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "sweep preview"}}}
        },
        "/admin/sweep/retry": {
            "post": {"summary": "Re-send queued orders of a batch", "tags": ["sweep"], "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "sweep result"}}}
        },
        "/admin/notifications/{id}/retry": {
            "post": {"summary": "Re-deliver a stored notification", "tags": ["notifications"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "delivery result"}, "502": {"description": "target refused"}}}
        },
        "/admin/payments/mark-paid": {
            "post": {"summary": "Mark confirmed orders of a merchant paid", "tags": ["payments"], "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "payment result"}, "409": {"description": "paid batch id already used"}}}
        },
        "/admin/lineage": {
            "get": {"summary": "Trace the records around an identifier", "tags": ["lineage"], "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "query", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "lineage chain"}}}
        },
        "/admin/orders/{id}": {
            "get": {"summary": "Order with its status history", "tags": ["orders"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "order"}}}
        },
        "/admin/orders/{id}/cancel": {
            "post": {"summary": "Cancel an order", "tags": ["orders"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "order"}}}
        },
        "/admin/orders/{id}/sell": {
            "post": {"summary": "Request a sell of a settled order", "tags": ["orders"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "order"}}}
        },
        "/admin/orders/{id}/sell/revert": {
            "post": {"summary": "Withdraw a sell request", "tags": ["orders"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "order"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "pointsweep",
	Description:      "Order settlement pipeline: prepare, sweep, broker callbacks, settlement and lineage.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
