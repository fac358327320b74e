// Package docs registers the OpenAPI description of the rebalancer API with swag.
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
        "/": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "rebalancer",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/rebalance": {
            "post": {
                "description": "Compute the current percentage and target amount of every asset",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "rebalance"
                ],
                "summary": "Rebalance a portfolio",
                "parameters": [
                    {
                        "description": "Assets to rebalance",
                        "name": "assets",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.AssetInput"
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.AssetResult"
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid request body",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "413": {
                        "description": "Request body too large",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "422": {
                        "description": "Validation error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.AssetInput": {
            "type": "object",
            "properties": {
                "current_amount": {
                    "type": "string",
                    "example": "100"
                },
                "name": {
                    "type": "string",
                    "example": "stocks"
                },
                "target_percentage": {
                    "type": "string",
                    "example": "60"
                }
            }
        },
        "models.AssetResult": {
            "type": "object",
            "properties": {
                "current_amount": {
                    "type": "string",
                    "example": "100"
                },
                "current_percentage": {
                    "type": "string",
                    "example": "50"
                },
                "name": {
                    "type": "string",
                    "example": "stocks"
                },
                "target_amount": {
                    "type": "string",
                    "example": "120"
                },
                "target_percentage": {
                    "type": "string",
                    "example": "60"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Rebalancer API",
	Description:      "Portfolio rebalancing calculator with exact decimal arithmetic.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
