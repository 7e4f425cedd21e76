// Package docs holds the OpenAPI document served at /api/docs
// regenerate with: swag init --v3.1 -g cmd/cattery-api/main.go -o internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/cattery/state": {
            "get": {
                "tags": ["Cattery"],
                "summary": "Current cattery state",
                "responses": {"200": {"$ref": "#/components/responses/State"}}
            }
        },
        "/cattery/refresh": {
            "post": {
                "tags": ["Cattery"],
                "summary": "Apply feeding decay and expire interactions",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.RefreshDTO"}}}}}
            }
        },
        "/cattery/adoptions": {
            "post": {
                "tags": ["Cattery"],
                "summary": "Adopt one cat",
                "responses": {
                    "201": {"description": "adopted", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.AdoptedDTO"}}}},
                    "429": {"description": "weekly limit reached", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/cattery/cats/{id}/interact": {
            "post": {
                "tags": ["Cattery"],
                "summary": "Pet a cat",
                "parameters": [{"$ref": "#/components/parameters/CatID"}],
                "responses": {"200": {"$ref": "#/components/responses/State"}}
            }
        },
        "/cattery/cats/{id}/name": {
            "put": {
                "tags": ["Cattery"],
                "summary": "Rename a cat",
                "parameters": [{"$ref": "#/components/parameters/CatID"}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.RenameInput"}}}},
                "responses": {
                    "200": {"$ref": "#/components/responses/State"},
                    "409": {"description": "name taken", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "422": {"description": "forbidden characters", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/cattery/gifts": {
            "post": {
                "tags": ["Cattery"],
                "summary": "Gift cats away",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.GiftInput"}}}},
                "responses": {"200": {"$ref": "#/components/responses/State"}}
            }
        },
        "/cattery/transfer": {
            "post": {
                "tags": ["Cattery"],
                "summary": "Hand the cattery over and start fresh",
                "responses": {"200": {"$ref": "#/components/responses/State"}}
            }
        },
        "/cattery/bowls/food": {
            "post": {
                "tags": ["Cattery"],
                "summary": "Fill the food bowl",
                "responses": {"200": {"$ref": "#/components/responses/State"}}
            }
        },
        "/cattery/bowls/water": {
            "post": {
                "tags": ["Cattery"],
                "summary": "Fill the water bowl",
                "responses": {"200": {"$ref": "#/components/responses/State"}}
            }
        },
        "/cattery/auto-feeder": {
            "put": {
                "tags": ["Cattery"],
                "summary": "Switch the auto-feeder",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.AutoFeederInput"}}}},
                "responses": {"200": {"$ref": "#/components/responses/State"}}
            }
        },
        "/cattery/language": {
            "put": {
                "tags": ["Cattery"],
                "summary": "Set the display language",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.LanguageInput"}}}},
                "responses": {"200": {"$ref": "#/components/responses/State"}}
            }
        },
        "/cattery/odds": {
            "get": {
                "tags": ["Cattery"],
                "summary": "Base probability per breed",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/domain.OddsDTO"}}}}}}
            }
        },
        "/cattery/odds/observed": {
            "get": {
                "tags": ["Cattery"],
                "summary": "Adoption outcomes seen so far against base odds",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "object"}}}}}
            }
        },
        "/cattery/events": {
            "get": {
                "tags": ["Cattery"],
                "summary": "Server-sent state after every write",
                "responses": {"200": {"description": "event: state", "content": {"text/event-stream": {"schema": {"type": "string"}}}}}
            }
        },
        "/meta/health": {
            "get": {"tags": ["Meta"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/ready": {
            "get": {"tags": ["Meta"], "summary": "Readiness per backend", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/version": {
            "get": {"tags": ["Meta"], "summary": "Build info", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/service": {
            "get": {"tags": ["Meta"], "summary": "Service name and uptime", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/rules": {
            "get": {"tags": ["Meta"], "summary": "Adoption rules in effect", "responses": {"200": {"description": "ok"}}}
        }
    },
    "components": {
        "parameters": {
            "CatID": {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}
        },
        "responses": {
            "State": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.StateDTO"}}}}
        },
        "schemas": {
            "domain.CatDTO": {
                "type": "object",
                "properties": {
                    "id": {"type": "integer", "format": "int64"},
                    "name": {"type": "string"},
                    "breed": {"type": "string"},
                    "skin_color": {"type": "string"},
                    "eye_color": {"type": "string"},
                    "rare_eyes": {"type": "boolean"},
                    "probability": {"type": "number"},
                    "interacted": {"type": "boolean"},
                    "emoji": {"type": "string", "nullable": true},
                    "interaction_reset_time": {"type": "string", "format": "date-time", "nullable": true},
                    "last_fed_time": {"type": "string", "format": "date-time"},
                    "brightness": {"type": "number"},
                    "saturation": {"type": "number"}
                }
            },
            "domain.StateDTO": {
                "type": "object",
                "properties": {
                    "cats": {"type": "array", "items": {"$ref": "#/components/schemas/domain.CatDTO"}},
                    "adoptions_this_week": {"type": "integer"},
                    "adoptions_left": {"type": "integer"},
                    "weekly_limit": {"type": "integer"},
                    "week_start_time": {"type": "string", "format": "date-time"},
                    "day_start_time": {"type": "string", "format": "date-time"},
                    "food_clicked_today": {"type": "boolean"},
                    "water_clicked_today": {"type": "boolean"},
                    "food_bowl": {"type": "string", "enum": ["auto", "already", "tap"]},
                    "water_bowl": {"type": "string", "enum": ["auto", "already", "tap"]},
                    "auto_feeder_enabled": {"type": "boolean"},
                    "language": {"type": "string"},
                    "pity_counter": {"type": "integer"},
                    "guarantee_counter": {"type": "integer"}
                }
            },
            "domain.AdoptedDTO": {
                "type": "object",
                "properties": {
                    "cat": {"$ref": "#/components/schemas/domain.CatDTO"},
                    "outcome": {"type": "string"},
                    "guaranteed": {"type": "boolean"},
                    "state": {"$ref": "#/components/schemas/domain.StateDTO"}
                }
            },
            "domain.RefreshDTO": {
                "type": "object",
                "properties": {
                    "changed": {"type": "boolean"},
                    "state": {"$ref": "#/components/schemas/domain.StateDTO"}
                }
            },
            "domain.OddsDTO": {"type": "object"},
            "domain.RenameInput": {
                "type": "object",
                "properties": {"name": {"type": "string"}}
            },
            "domain.GiftInput": {
                "type": "object",
                "required": ["ids"],
                "properties": {"ids": {"type": "array", "items": {"type": "integer", "format": "int64"}}}
            },
            "domain.AutoFeederInput": {
                "type": "object",
                "required": ["enabled"],
                "properties": {"enabled": {"type": "boolean"}}
            },
            "domain.LanguageInput": {
                "type": "object",
                "required": ["language"],
                "properties": {"language": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "Cattery API",
	Description:      "Adopt, feed, and look after a small cattery",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
