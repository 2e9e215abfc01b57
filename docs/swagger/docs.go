// Package swagger holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/categories": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "List categories",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/CategoryListResponse"
						}
					}
				}
			}
		},
		"/categories/{slug}/deactivate": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"categories"
				],
				"summary": "Deactivate category",
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Category slug",
						"name": "slug",
						"in": "path",
						"required": true
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/items": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "List items",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ItemListResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"description": "Active items, newest first. Prices are whole rupees; 0 means no bound.",
				"parameters": [
					{
						"type": "string",
						"description": "Category slug",
						"name": "category",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Garment size",
						"name": "size",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Minimum price per day",
						"name": "min_price",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Maximum price per day",
						"name": "max_price",
						"in": "query"
					},
					{
						"type": "string",
						"description": "City substring",
						"name": "city",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Title or description substring",
						"name": "search",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "per_page",
						"in": "query"
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "Create item",
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/ItemResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"description": "Lists a garment for rent in an active category",
				"parameters": [
					{
						"description": "CreateItemRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CreateItemRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/items/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "Get item",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ItemResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Item ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "Remove item",
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Item ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/items/{id}/reviews": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reviews"
				],
				"summary": "List item reviews",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ReviewListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Item ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/user/items": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "List my items",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/OwnerItemsResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		},
		"/search": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"items"
				],
				"summary": "Search items",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/SearchResponse"
						}
					}
				},
				"description": "Up to 20 matching items plus suggestions. Queries shorter than 2 characters return nothing.",
				"parameters": [
					{
						"type": "string",
						"description": "Search text",
						"name": "q",
						"in": "query",
						"required": true
					}
				]
			}
		},
		"/rentals": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"rentals"
				],
				"summary": "List rentals",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/RentalListResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "renter or owner",
						"name": "as",
						"in": "query",
						"enum": [
							"renter",
							"owner"
						]
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"rentals"
				],
				"summary": "Request rental",
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/RentalResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"description": "Creates a pending rental after checking availability and date conflicts",
				"parameters": [
					{
						"description": "CreateRentalRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CreateRentalRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/rentals/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"rentals"
				],
				"summary": "Get rental",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/RentalResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Rental ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/rentals/{id}/status": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"rentals"
				],
				"summary": "Update rental status",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/RentalResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Rental ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "UpdateRentalStatusRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/UpdateRentalStatusRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/reviews": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reviews"
				],
				"summary": "Submit review",
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/CreateReviewResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"description": "CreateReviewRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CreateReviewRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		}
	},
	"definitions": {
		"ErrorBody": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string",
					"example": "item not found"
				},
				"code": {
					"type": "string",
					"example": "item_not_found"
				}
			}
		},
		"PageMeta": {
			"type": "object",
			"properties": {
				"page": {
					"type": "integer",
					"example": 1
				},
				"pages": {
					"type": "integer",
					"example": 4
				},
				"per_page": {
					"type": "integer",
					"example": 12
				},
				"total": {
					"type": "integer",
					"example": 42
				},
				"has_next": {
					"type": "boolean"
				},
				"has_prev": {
					"type": "boolean"
				}
			}
		},
		"CategoryRef": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"slug": {
					"type": "string",
					"example": "formal"
				},
				"name": {
					"type": "string",
					"example": "Formal Wear"
				}
			}
		},
		"CategoryResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string",
					"example": "Formal Wear"
				},
				"slug": {
					"type": "string",
					"example": "formal"
				},
				"description": {
					"type": "string"
				},
				"item_count": {
					"type": "integer",
					"example": 12
				}
			}
		},
		"CategoryListResponse": {
			"type": "object",
			"properties": {
				"categories": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/CategoryResponse"
					}
				}
			}
		},
		"ItemResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"owner_id": {
					"type": "string"
				},
				"category": {
					"$ref": "#/definitions/CategoryRef"
				},
				"title": {
					"type": "string",
					"example": "Velvet tuxedo"
				},
				"description": {
					"type": "string"
				},
				"size": {
					"type": "string",
					"example": "M"
				},
				"price_per_day": {
					"type": "integer",
					"example": 800
				},
				"security_deposit": {
					"type": "integer",
					"example": 2000
				},
				"condition": {
					"type": "string",
					"example": "excellent"
				},
				"city": {
					"type": "string",
					"example": "Mumbai"
				},
				"status": {
					"type": "string",
					"example": "available"
				},
				"rating": {
					"type": "number",
					"example": 4.5
				},
				"reviews_count": {
					"type": "integer",
					"example": 2
				},
				"views": {
					"type": "integer",
					"example": 17
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"ItemListResponse": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/ItemResponse"
					}
				},
				"pagination": {
					"$ref": "#/definitions/PageMeta"
				}
			}
		},
		"OwnerItemsResponse": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/ItemResponse"
					}
				},
				"count": {
					"type": "integer",
					"example": 3
				}
			}
		},
		"SearchResponse": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/ItemResponse"
					}
				},
				"suggestions": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"CreateItemRequest": {
			"type": "object",
			"properties": {
				"category_id": {
					"type": "string"
				},
				"title": {
					"type": "string",
					"maxLength": 200,
					"example": "Velvet tuxedo"
				},
				"description": {
					"type": "string",
					"maxLength": 5000
				},
				"size": {
					"type": "string",
					"enum": [
						"XS",
						"S",
						"M",
						"L",
						"XL",
						"XXL"
					]
				},
				"price_per_day": {
					"type": "integer",
					"minimum": 1,
					"maximum": 10000000,
					"example": 800
				},
				"security_deposit": {
					"type": "integer",
					"minimum": 0,
					"maximum": 10000000,
					"example": 2000
				},
				"condition": {
					"type": "string",
					"maxLength": 50
				},
				"city": {
					"type": "string",
					"maxLength": 100
				}
			},
			"required": [
				"category_id",
				"title",
				"size",
				"price_per_day"
			]
		},
		"RentalResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"item_id": {
					"type": "string"
				},
				"item_title": {
					"type": "string",
					"example": "Banarasi silk saree"
				},
				"renter_id": {
					"type": "string"
				},
				"owner_id": {
					"type": "string"
				},
				"start_date": {
					"type": "string",
					"example": "2024-06-01"
				},
				"end_date": {
					"type": "string",
					"example": "2024-06-03"
				},
				"days": {
					"type": "integer",
					"example": 2
				},
				"total_amount": {
					"type": "integer",
					"example": 1600
				},
				"security_deposit": {
					"type": "integer",
					"example": 2000
				},
				"status": {
					"type": "string",
					"example": "pending"
				},
				"message": {
					"type": "string"
				},
				"payment_status": {
					"type": "string",
					"example": "pending"
				},
				"created_at": {
					"type": "string"
				},
				"updated_at": {
					"type": "string"
				},
				"approved_at": {
					"type": "string"
				},
				"started_at": {
					"type": "string"
				},
				"completed_at": {
					"type": "string"
				},
				"cancelled_at": {
					"type": "string"
				}
			}
		},
		"RentalListResponse": {
			"type": "object",
			"properties": {
				"rentals": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/RentalResponse"
					}
				},
				"count": {
					"type": "integer",
					"example": 1
				}
			}
		},
		"CreateRentalRequest": {
			"type": "object",
			"properties": {
				"item_id": {
					"type": "string"
				},
				"start_date": {
					"type": "string",
					"example": "2024-06-01"
				},
				"end_date": {
					"type": "string",
					"example": "2024-06-03"
				},
				"message": {
					"type": "string",
					"maxLength": 1000
				}
			},
			"required": [
				"item_id",
				"start_date",
				"end_date"
			]
		},
		"UpdateRentalStatusRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"pending",
						"approved",
						"active",
						"completed",
						"cancelled"
					]
				}
			},
			"required": [
				"status"
			]
		},
		"ReviewResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"item_id": {
					"type": "string"
				},
				"rental_id": {
					"type": "string"
				},
				"reviewer_id": {
					"type": "string"
				},
				"rating": {
					"type": "integer",
					"example": 5
				},
				"comment": {
					"type": "string",
					"example": "Fit perfectly"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"ReviewListResponse": {
			"type": "object",
			"properties": {
				"reviews": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/ReviewResponse"
					}
				},
				"count": {
					"type": "integer",
					"example": 2
				}
			}
		},
		"CreateReviewRequest": {
			"type": "object",
			"properties": {
				"rental_id": {
					"type": "string"
				},
				"rating": {
					"type": "integer",
					"example": 5
				},
				"comment": {
					"type": "string",
					"maxLength": 2000
				}
			},
			"required": [
				"rental_id",
				"rating"
			]
		},
		"CreateReviewResponse": {
			"type": "object",
			"properties": {
				"review": {
					"$ref": "#/definitions/ReviewResponse"
				},
				"item_rating": {
					"type": "number",
					"example": 4.5
				},
				"reviews_count": {
					"type": "integer",
					"example": 2
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Rentrobe API",
	Description:      "Peer-to-peer clothing rental: catalog browsing, rental requests and reviews.\nAmounts are whole rupees; dates are YYYY-MM-DD.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
